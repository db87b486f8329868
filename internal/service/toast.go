package service

import "context"

// ToastVariant selects the toast styling on the frontend.
type ToastVariant string

const (
	ToastDefault     ToastVariant = "default"
	ToastDestructive ToastVariant = "destructive"
)

// Toast is a transient user notification.
type Toast struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Variant     ToastVariant `json:"variant"`
}

// Toaster sends toasts to the frontend.
type Toaster struct {
	emitter EventEmitter
}

func NewToaster(emitter EventEmitter) *Toaster {
	return &Toaster{emitter: emitter}
}

func (t *Toaster) Show(ctx context.Context, toast Toast) {
	if toast.Variant == "" {
		toast.Variant = ToastDefault
	}
	t.emitter.Emit(ctx, EventToast, toast)
}

// Error shows a destructive toast.
func (t *Toaster) Error(ctx context.Context, title, description string) {
	t.Show(ctx, Toast{Title: title, Description: description, Variant: ToastDestructive})
}
