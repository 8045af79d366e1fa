package workflow

import "sync"

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient user-facing message (a toast).
type Notification struct {
	Variant     Variant `json:"variant"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

var (
	noFileSelected = Notification{
		Variant:     VariantDestructive,
		Title:       "No file selected",
		Description: "Please upload a PDF file to evaluate.",
	}
	evaluationComplete = Notification{
		Variant:     VariantDefault,
		Title:       "Evaluation complete",
		Description: "Your design has been evaluated successfully.",
	}
	evaluationFailed = Notification{
		Variant:     VariantDestructive,
		Title:       "Evaluation failed",
		Description: "An error occurred during the evaluation process.",
	}
)

// Inbox collects notifications until they are drained by a view.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
}

func (i *Inbox) Notify(n Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, n)
}

// Drain returns pending notifications in arrival order and clears them.
func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	return out
}

func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items)
}
