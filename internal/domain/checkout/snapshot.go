package checkout

import (
	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// SnapshotLine is one cart line frozen at checkout time. UnitPrice is
// the product's current price at the moment the snapshot is taken and
// does not follow later catalog changes.
type SnapshotLine struct {
	ProductID   uuid.UUID
	ProductName string
	VendorID    uuid.UUID
	MarketID    uuid.UUID
	Quantity    int
	UnitPrice   valueobject.Money
}

// LineTotal returns unit price multiplied by quantity
func (l SnapshotLine) LineTotal() valueobject.Money {
	return l.UnitPrice.MultiplyByInt(int64(l.Quantity))
}

// Snapshot is a customer's validated cart at the moment of checkout.
type Snapshot struct {
	CustomerID uuid.UUID
	Lines      []SnapshotLine
}

// OrderGroup is the subset of snapshot lines belonging to one market,
// fulfilled as a single order. Groups are never empty.
type OrderGroup struct {
	MarketID uuid.UUID
	Lines    []SnapshotLine
}

// Subtotal sums the group's line totals with exact decimal arithmetic
func (g OrderGroup) Subtotal() valueobject.Money {
	total := valueobject.ZeroSAR()
	for _, line := range g.Lines {
		total = total.MustAdd(line.LineTotal())
	}
	return total
}

// GroupByMarket partitions the snapshot's lines by market id. Group
// order follows first appearance of each market; line order within a
// group is preserved.
func (s Snapshot) GroupByMarket() []OrderGroup {
	index := make(map[uuid.UUID]int)
	groups := make([]OrderGroup, 0)
	for _, line := range s.Lines {
		i, ok := index[line.MarketID]
		if !ok {
			i = len(groups)
			index[line.MarketID] = i
			groups = append(groups, OrderGroup{MarketID: line.MarketID})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}
	return groups
}

// Subtotal sums all line totals across the snapshot
func (s Snapshot) Subtotal() valueobject.Money {
	total := valueobject.ZeroSAR()
	for _, line := range s.Lines {
		total = total.MustAdd(line.LineTotal())
	}
	return total
}
