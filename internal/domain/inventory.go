package domain

// InventoryEntry is the amount of one item held by one user. There is at most
// one entry per (UserID, ItemID).
type InventoryEntry struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
	Amount int64 `json:"amount"`
}

// PlayerSnapshot is a point-in-time view of a user's balances. Items maps item
// ID to amount and never holds zero or negative amounts.
type PlayerSnapshot struct {
	UserID int64           `json:"user_id"`
	Cash   int64           `json:"cash"`
	Energy int64           `json:"energy"`
	Items  map[int64]int64 `json:"items"`
}

// NewPlayerSnapshot builds a snapshot from a user row and their inventory.
func NewPlayerSnapshot(user User, entries []InventoryEntry) PlayerSnapshot {
	p := PlayerSnapshot{
		UserID: user.ID,
		Cash:   user.Cash,
		Energy: user.Energy,
		Items:  make(map[int64]int64, len(entries)),
	}
	for _, e := range entries {
		p.AddItem(e.ItemID, e.Amount)
	}
	return p
}

// AddItem adjusts the held amount of itemID by delta. An amount that drops to
// zero or below removes the item.
func (p *PlayerSnapshot) AddItem(itemID, delta int64) {
	if p.Items == nil {
		p.Items = make(map[int64]int64)
	}
	amount := p.Items[itemID] + delta
	if amount <= 0 {
		delete(p.Items, itemID)
		return
	}
	p.Items[itemID] = amount
}

// AddCash adjusts the cash balance by delta.
func (p *PlayerSnapshot) AddCash(delta int64) {
	p.Cash += delta
}

// Amount returns how many of itemID the player holds.
func (p PlayerSnapshot) Amount(itemID int64) int64 {
	return p.Items[itemID]
}

// Clone returns a deep copy safe to hand to callers.
func (p PlayerSnapshot) Clone() PlayerSnapshot {
	c := p
	c.Items = make(map[int64]int64, len(p.Items))
	for k, v := range p.Items {
		c.Items[k] = v
	}
	return c
}
