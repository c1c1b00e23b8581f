package propagation

// OlderUpdate keeps the existing timestamp and adds the new creators.
type OlderUpdate struct{}

func (OlderUpdate) Update(old, incoming PropagatedInformation) PropagatedInformation {
	return PropagatedInformation{
		Info:      old.Info,
		Timestamp: old.Timestamp,
		Creators:  mergeCreators(old.Creators, incoming.Creators),
	}
}

// NewestUpdate refreshes the timestamp and adds the new creators.
type NewestUpdate struct{}

func (NewestUpdate) Update(old, incoming PropagatedInformation) PropagatedInformation {
	return PropagatedInformation{
		Info:      old.Info,
		Timestamp: max(old.Timestamp, incoming.Timestamp),
		Creators:  mergeCreators(old.Creators, incoming.Creators),
	}
}

// ReplaceUpdate discards the existing record.
type ReplaceUpdate struct{}

func (ReplaceUpdate) Update(_, incoming PropagatedInformation) PropagatedInformation {
	return incoming.clone()
}
