package model

// Category is a strategic grouping of starting hands.
type Category string

// Hand categories.
const (
	PocketPair      Category = "pocket_pair"
	SuitedBroadway  Category = "suited_broadway"
	OffsuitBroadway Category = "offsuit_broadway"
	SuitedConnector Category = "suited_connector"
	SuitedGapper    Category = "suited_gapper"
	SuitedAce       Category = "suited_ace"
	OffsuitAce      Category = "offsuit_ace"
	SuitedKing      Category = "suited_king"
	Trash           Category = "trash"
)

// Categories lists every category in display order.
var Categories = []Category{
	PocketPair,
	SuitedBroadway,
	OffsuitBroadway,
	SuitedConnector,
	SuitedGapper,
	SuitedAce,
	OffsuitAce,
	SuitedKing,
	Trash,
}

// Label returns the singular display name.
func (c Category) Label() string {
	switch c {
	case PocketPair:
		return "Pocket Pair"
	case SuitedBroadway:
		return "Suited Broadway"
	case OffsuitBroadway:
		return "Offsuit Broadway"
	case SuitedConnector:
		return "Suited Connector"
	case SuitedGapper:
		return "Suited Gapper"
	case SuitedAce:
		return "Suited Ace"
	case OffsuitAce:
		return "Offsuit Ace"
	case SuitedKing:
		return "Suited King"
	case Trash:
		return "Marginal Hand"
	}
	return "Unknown"
}

// Plural returns the lower-case plural used in coaching messages.
func (c Category) Plural() string {
	switch c {
	case PocketPair:
		return "pocket pairs"
	case SuitedBroadway:
		return "suited broadways"
	case OffsuitBroadway:
		return "offsuit broadways"
	case SuitedConnector:
		return "suited connectors"
	case SuitedGapper:
		return "suited gappers"
	case SuitedAce:
		return "suited aces"
	case OffsuitAce:
		return "offsuit aces"
	case SuitedKing:
		return "suited kings"
	case Trash:
		return "marginal hands"
	}
	return string(c)
}
