package order

// Container is the active-orders collection, keyed by client order id so
// push-event matching is a lookup instead of a scan. It is not safe for
// concurrent use; the owning client serializes access.
type Container struct {
	orders map[string]*Order
}

func NewContainer() *Container {
	return &Container{orders: make(map[string]*Order)}
}

func (c *Container) Add(o *Order) {
	c.orders[o.ID] = o
}

func (c *Container) Get(id string) *Order {
	return c.orders[id]
}

// Remove deletes and returns the order with the given id, or nil.
func (c *Container) Remove(id string) *Order {
	o := c.orders[id]
	if o != nil {
		delete(c.orders, id)
	}
	return o
}

func (c *Container) Len() int {
	return len(c.orders)
}

func (c *Container) List() []*Order {
	out := make([]*Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o)
	}
	return out
}

func (c *Container) Reset() {
	c.orders = make(map[string]*Order)
}

// HasLevel reports whether any active order sits at the given price level.
func (c *Container) HasLevel(px float64) bool {
	for _, o := range c.orders {
		if o.Price == px {
			return true
		}
	}
	return false
}

// TotalQty sums the original quantities of all active orders.
func (c *Container) TotalQty() float64 {
	var total float64
	for _, o := range c.orders {
		total += o.Qty
	}
	return total
}
