package models

// EventType classifies an event. Values are stored and serialized as integers.
type EventType int

const (
	EventTypeGeneral EventType = iota
	EventTypeService
	EventTypePrayer
	EventTypeYouth
	EventTypeWomen
	EventTypeMen
	EventTypeChildren
	EventTypeConference
	EventTypeOutreach
	EventTypeOther
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return t >= EventTypeGeneral && t <= EventTypeOther
}

// EventStatus is free-form: any status may follow any other.
type EventStatus int

const (
	EventStatusUpcoming EventStatus = iota
	EventStatusCompleted
	EventStatusCancelled
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	return s >= EventStatusUpcoming && s <= EventStatusCancelled
}

func (s EventStatus) String() string {
	switch s {
	case EventStatusUpcoming:
		return "Upcoming"
	case EventStatusCompleted:
		return "Completed"
	case EventStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// HighlightType is the media kind of a highlight.
type HighlightType int

const (
	HighlightTypeImage HighlightType = iota
	HighlightTypeVideo
)

// Valid reports whether t is a known highlight type.
func (t HighlightType) Valid() bool {
	return t == HighlightTypeImage || t == HighlightTypeVideo
}
