package model

import (
	"fmt"
	"time"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "en_attente"
	OrderStatusApproved   OrderStatus = "approuvee"
	OrderStatusInProgress OrderStatus = "en_cours"
	OrderStatusReady      OrderStatus = "prete"
	OrderStatusServed     OrderStatus = "servie"
	OrderStatusReceived   OrderStatus = "receptionnee"
	OrderStatusPaid       OrderStatus = "payee"
	OrderStatusCancelled  OrderStatus = "annulee"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusInProgress, OrderStatusReady,
		OrderStatusServed, OrderStatusReceived, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Transition is a guarded status change.
type Transition struct {
	Name string
	From []OrderStatus
	To   OrderStatus
}

// Allows reports whether the transition may start from s.
func (t Transition) Allows(s OrderStatus) bool {
	for _, from := range t.From {
		if from == s {
			return true
		}
	}
	return false
}

var (
	TransitionApprove        = Transition{Name: "approve", From: []OrderStatus{OrderStatusPending}, To: OrderStatusApproved}
	TransitionSendToKitchen  = Transition{Name: "send to kitchen", From: []OrderStatus{OrderStatusApproved}, To: OrderStatusInProgress}
	TransitionMarkReady      = Transition{Name: "mark ready", From: []OrderStatus{OrderStatusInProgress}, To: OrderStatusReady}
	TransitionMarkServed     = Transition{Name: "mark served", From: []OrderStatus{OrderStatusReady}, To: OrderStatusServed}
	TransitionConfirmReceipt = Transition{Name: "confirm receipt", From: []OrderStatus{OrderStatusServed}, To: OrderStatusReceived}
	TransitionCancel         = Transition{
		Name: "cancel",
		From: []OrderStatus{
			OrderStatusPending, OrderStatusApproved, OrderStatusInProgress,
			OrderStatusReady, OrderStatusServed, OrderStatusReceived,
		},
		To: OrderStatusCancelled,
	}
)

const (
	LineStatusPending = "en_attente"
	LineStatusPaid    = "payee"
)

// Order is one customer transaction at a table.
type Order struct {
	ID        int64
	ClientID  int64
	TableID   int64
	ServerID  *int64
	CookID    *int64
	Status    OrderStatus
	Total     int64
	Type      string
	Notes     string
	CreatedAt time.Time
	Lines     []OrderLine
}

// TargetKind tells which catalog entry an order line points to.
type TargetKind string

const (
	TargetDish TargetKind = "dish"
	TargetMenu TargetKind = "menu"
)

// LineTarget references either a dish or a menu bundle, never both.
type LineTarget struct {
	kind TargetKind
	id   int64
}

// DishTarget points a line at a dish.
func DishTarget(id int64) LineTarget { return LineTarget{kind: TargetDish, id: id} }

// MenuTarget points a line at a menu bundle.
func MenuTarget(id int64) LineTarget { return LineTarget{kind: TargetMenu, id: id} }

func (t LineTarget) Kind() TargetKind { return t.kind }
func (t LineTarget) ID() int64        { return t.id }
func (t LineTarget) IsZero() bool     { return t.kind == "" }

// Columns splits the target into nullable dish and menu identifiers.
func (t LineTarget) Columns() (dishID, menuID *int64) {
	id := t.id
	switch t.kind {
	case TargetDish:
		return &id, nil
	case TargetMenu:
		return nil, &id
	}
	return nil, nil
}

func (t LineTarget) String() string {
	if t.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%s:%d", t.kind, t.id)
}

// TargetFromColumns rebuilds a target from stored identifiers.
func TargetFromColumns(dishID, menuID *int64) (LineTarget, error) {
	switch {
	case dishID != nil && menuID == nil:
		return DishTarget(*dishID), nil
	case menuID != nil && dishID == nil:
		return MenuTarget(*menuID), nil
	}
	return LineTarget{}, fmt.Errorf("order line must reference exactly one of dish or menu")
}

// OrderLine is a single dish or menu quantity within an order.
type OrderLine struct {
	ID        int64
	OrderID   int64
	Target    LineTarget
	Quantity  int
	UnitPrice int64
	Notes     string
	Status    string
}

// Subtotal returns unit price times quantity.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// SumLines totals every line subtotal.
func SumLines(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// OrderPatch lists editable order attributes; nil fields are left untouched.
type OrderPatch struct {
	ClientID *int64
	TableID  *int64
	ServerID *int64
	Type     *string
	Notes    *string
}

// LineDraft describes one line to add to an order. A zero UnitPrice means
// "use the catalog price".
type LineDraft struct {
	Target    LineTarget
	Quantity  int
	UnitPrice int64
	Notes     string
}

// OrderDraft describes an order to open.
type OrderDraft struct {
	ClientID int64
	TableID  int64
	Type     string
	Notes    string
	Lines    []LineDraft
}
