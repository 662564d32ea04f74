package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "en_attente"},
		{"approved", OrderStatusApproved, "approuvee"},
		{"in progress", OrderStatusInProgress, "en_cours"},
		{"ready", OrderStatusReady, "prete"},
		{"served", OrderStatusServed, "servie"},
		{"received", OrderStatusReceived, "receptionnee"},
		{"paid", OrderStatusPaid, "payee"},
		{"cancelled", OrderStatusCancelled, "annulee"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("livree").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestTransitionsFollowTheForwardChain(t *testing.T) {
	chain := []Transition{
		TransitionApprove,
		TransitionSendToKitchen,
		TransitionMarkReady,
		TransitionMarkServed,
		TransitionConfirmReceipt,
	}

	status := OrderStatusPending
	for _, tr := range chain {
		if !tr.Allows(status) {
			t.Fatalf("%s must start from %s", tr.Name, status)
		}
		for _, other := range chain {
			if other.Name != tr.Name && other.Allows(status) {
				t.Fatalf("%s must not start from %s", other.Name, status)
			}
		}
		status = tr.To
	}
	if status != OrderStatusReceived {
		t.Fatalf("expected chain to end in received, got %s", status)
	}
}

func TestCancelRejectsTerminalStates(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPaid, OrderStatusCancelled} {
		if TransitionCancel.Allows(s) {
			t.Fatalf("cancel must not start from %s", s)
		}
	}
	if !TransitionCancel.Allows(OrderStatusReceived) {
		t.Fatal("cancel must start from received")
	}
}

func TestLineTarget(t *testing.T) {
	dish := DishTarget(3)
	if dish.Kind() != TargetDish || dish.ID() != 3 || dish.IsZero() {
		t.Fatalf("unexpected dish target %v", dish)
	}
	d, m := dish.Columns()
	if d == nil || *d != 3 || m != nil {
		t.Fatalf("unexpected columns %v %v", d, m)
	}

	menu := MenuTarget(9)
	d, m = menu.Columns()
	if d != nil || m == nil || *m != 9 {
		t.Fatalf("unexpected columns %v %v", d, m)
	}

	var zero LineTarget
	if !zero.IsZero() || zero.String() != "none" {
		t.Fatalf("zero target must be empty")
	}

	id := int64(5)
	if got, err := TargetFromColumns(&id, nil); err != nil || got != DishTarget(5) {
		t.Fatalf("unexpected target %v err %v", got, err)
	}
	if got, err := TargetFromColumns(nil, &id); err != nil || got != MenuTarget(5) {
		t.Fatalf("unexpected target %v err %v", got, err)
	}
	if _, err := TargetFromColumns(&id, &id); err == nil {
		t.Fatal("expected error when both columns are set")
	}
	if _, err := TargetFromColumns(nil, nil); err == nil {
		t.Fatal("expected error when no column is set")
	}
}

func TestSumLinesIsOrderIndependent(t *testing.T) {
	lines := []OrderLine{
		{Quantity: 2, UnitPrice: 1000},
		{Quantity: 1, UnitPrice: 2000},
		{Quantity: 3, UnitPrice: 150},
	}
	reversed := []OrderLine{lines[2], lines[1], lines[0]}

	if SumLines(lines) != 4450 || SumLines(reversed) != 4450 {
		t.Fatalf("unexpected totals %d %d", SumLines(lines), SumLines(reversed))
	}
	if SumLines(nil) != 0 {
		t.Fatal("empty order must total zero")
	}
}

func TestRoles(t *testing.T) {
	for _, r := range []Role{RoleManager, RoleWaiter, RoleCook} {
		if !r.Valid() || !r.Staff() {
			t.Fatalf("%s must be valid staff", r)
		}
	}
	if !RoleClient.Valid() || RoleClient.Staff() {
		t.Fatal("client must be valid and not staff")
	}
	if Role("admin").Valid() {
		t.Fatal("unknown role must be invalid")
	}
}

func TestPaymentMethodAndReservationStatus(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCard, PaymentMethodCash, PaymentMethodMobile} {
		if !m.Valid() {
			t.Fatalf("%s must be valid", m)
		}
	}
	if PaymentMethod("cheque").Valid() {
		t.Fatal("cheque must be invalid")
	}
	if !ReservationStatusNoShow.Valid() || ReservationStatus("x").Valid() {
		t.Fatal("unexpected reservation status validity")
	}
}
