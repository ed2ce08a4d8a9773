package order

import (
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// Channel is the sales channel an order came through.
type Channel string

const (
	B2B Channel = "B2B"
	B2C Channel = "B2C"
)

// ParseChannel accepts "B2B" or "B2C" in any case.
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToUpper(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate accepts only B2B and B2C.
func (c Channel) Validate() error {
	if c != B2B && c != B2C {
		return errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%q is not B2B or B2C", string(c)))
	}
	return nil
}

// String returns the channel code.
func (c Channel) String() string {
	return string(c)
}

// Priority is the dispatch urgency of an order. It orders automatic
// allocation; FEFO itself ignores it.
type Priority string

const (
	Urgent Priority = "urgent"
	Normal Priority = "normal"
	Low    Priority = "low"
)

var priorityRanks = map[Priority]int{
	Urgent: 0,
	Normal: 1,
	Low:    2,
}

// ParsePriority accepts "urgent", "normal" or "low" in any case. An empty
// string means Normal.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Normal, nil
	}
	p := Priority(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate accepts only Urgent, Normal and Low.
func (p Priority) Validate() error {
	if _, ok := priorityRanks[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not urgent, normal or low", string(p)))
	}
	return nil
}

// Rank is 0 for the most urgent priority. Unknown priorities rank last.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

// String returns the priority name.
func (p Priority) String() string {
	return string(p)
}
