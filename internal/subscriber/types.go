// Package subscriber manages subscriber accounts: the billing entity
// users and devices belong to.
package subscriber

import (
	"time"

	"github.com/nerrad567/pulselink-core/internal/geo"
)

// Plan is a subscription tier.
type Plan string

// Subscription tiers.
const (
	PlanBasic      Plan = "basic"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Subscriber is a stored subscriber.
type Subscriber struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	PlanType    Plan       `json:"plan_type"`
	CreatedAt   time.Time  `json:"created_at"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phone_number"`
	GeoLocation *geo.Point `json:"geo_location"`
}

// NewSubscriber holds the fields for Create. An empty PlanType selects
// PlanBasic; a nil GeoLocation stores no point.
type NewSubscriber struct {
	Name        string
	PlanType    Plan
	Address     string
	PhoneNumber string
	GeoLocation *geo.Point
}

// Patch holds the fields for Update. Nil fields are left unchanged.
// ClearGeoLocation removes the stored point; a GeoLocation that cannot
// be encoded has the same effect.
type Patch struct {
	Name             *string
	PlanType         *Plan
	Address          *string
	PhoneNumber      *string
	GeoLocation      *geo.Point
	ClearGeoLocation bool
}

func (p Patch) empty() bool {
	return p.Name == nil && p.PlanType == nil && p.Address == nil &&
		p.PhoneNumber == nil && p.GeoLocation == nil && !p.ClearGeoLocation
}
