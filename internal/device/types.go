package device

// Device is a stored device.
type Device struct {
	ID           int64   `json:"id"`
	SubscriberID int64   `json:"subscriber_id"`
	MacID        string  `json:"mac_id"`
	ModelName    *string `json:"model_name"`
}

// NewDevice holds the fields for Create. A nil ModelName stores NULL.
type NewDevice struct {
	SubscriberID int64
	MacID        string
	ModelName    *string
}

// Patch holds the fields for Update. Nil fields are left unchanged.
type Patch struct {
	SubscriberID *int64
	MacID        *string
	ModelName    *string
}

func (p Patch) empty() bool {
	return p.SubscriberID == nil && p.MacID == nil && p.ModelName == nil
}
