// internal/domain/terminal/dispatcher.go
package terminal

// KeyEvent is one keyboard event forwarded by the UI shell. Meta stands in
// for the macOS command key, so Ctrl and Meta are interchangeable in every
// binding. InputFocused is true while a text field has focus.
type KeyEvent struct {
	Key          string `json:"key"`
	Ctrl         bool   `json:"ctrl"`
	Meta         bool   `json:"meta"`
	InputFocused bool   `json:"input_focused"`
}

func (e KeyEvent) modifier() bool {
	return e.Ctrl || e.Meta
}

// Action names what a dispatched key did
type Action string

const (
	ActionNone         Action = ""
	ActionOpenPayment  Action = "open_payment"
	ActionClearCart    Action = "clear_cart"
	ActionFocusSearch  Action = "focus_search"
	ActionOpenHistory  Action = "open_history"
	ActionQuickAdd     Action = "quick_add"
	ActionConfirm      Action = "confirm"
	ActionCloseDialogs Action = "close_dialogs"
)

// Outcome reports what a key event resolved to. FocusSearch asks the shell
// to move focus to the search field; the backend has no cursor of its own.
type Outcome struct {
	Action      Action `json:"action"`
	Handled     bool   `json:"handled"`
	FocusSearch bool   `json:"focus_search,omitempty"`
	Err         error  `json:"-"`
}

// Dispatch routes one keyboard event to the session operation it is bound
// to. Unbound keys return an unhandled outcome so the shell falls through
// to its default behavior.
//
//	ctrl/cmd+p  open payment dialog
//	ctrl/cmd+c  clear cart
//	ctrl/cmd+f  focus search field
//	ctrl/cmd+h  open order history
//	1..9        quick-add the Nth visible product
//	enter       confirm, only while the payment dialog is open
//	escape      close all dialogs
func (s *Session) Dispatch(event KeyEvent) Outcome {
	if event.modifier() {
		switch event.Key {
		case "p", "P":
			s.OpenPayment()
			return Outcome{Action: ActionOpenPayment, Handled: true}
		case "c", "C":
			s.ClearCart()
			return Outcome{Action: ActionClearCart, Handled: true}
		case "f", "F":
			return Outcome{Action: ActionFocusSearch, Handled: true, FocusSearch: true}
		case "h", "H":
			s.OpenHistory()
			return Outcome{Action: ActionOpenHistory, Handled: true}
		}
		return Outcome{}
	}

	switch event.Key {
	case "Enter":
		// Enter only means confirm while the dialog is open; everywhere
		// else it keeps its normal meaning for text fields.
		s.mu.Lock()
		open := s.checkout.PaymentOpen()
		s.mu.Unlock()
		if !open {
			return Outcome{}
		}
		_, err := s.Confirm()
		return Outcome{Action: ActionConfirm, Handled: true, Err: err}
	case "Escape":
		s.CloseDialogs()
		return Outcome{Action: ActionCloseDialogs, Handled: true}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if event.InputFocused {
			return Outcome{}
		}
		return s.quickAdd(int(event.Key[0] - '0'))
	}
	return Outcome{}
}

// quickAdd adds one unit of the Nth product of the current view, 1-based.
// The binding is to the view position, not a product id: what the operator
// sees in slot N is what digit N adds.
func (s *Session) quickAdd(position int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.visibleLocked()
	if position < 1 || position > len(visible) {
		return Outcome{}
	}
	err := s.cart.Add(visible[position-1], 1)
	return Outcome{Action: ActionQuickAdd, Handled: true, Err: err}
}
