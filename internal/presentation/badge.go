package presentation

import (
	"fmt"

	"ott-manager.app/api/models"
)

const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorGray   = "gray"
)

const (
	IconPlay        = "play"
	IconClock       = "clock"
	IconStar        = "star"
	IconCheckCircle = "check-circle"
	IconLoader      = "loader"
	IconXCircle     = "x-circle"
)

const (
	ActionManage    = "manage"
	ActionRenew     = "renew"
	ActionSubscribe = "subscribe"
)

// Badge is the presentation tuple for a status. Empty Icon or Action
// means none is shown.
type Badge struct {
	Color  string `json:"color"`
	Icon   string `json:"icon,omitempty"`
	Action string `json:"action,omitempty"`
}

var unknownBadge = Badge{Color: ColorGray}

// ClassifySubscription is total: statuses outside the enumeration get the
// gray badge.
func ClassifySubscription(status string) Badge {
	switch models.SubscriptionStatus(status) {
	case models.StatusActive:
		return Badge{Color: ColorGreen, Icon: IconPlay, Action: ActionManage}
	case models.StatusExpired:
		return Badge{Color: ColorRed, Icon: IconClock, Action: ActionRenew}
	case models.StatusTrial:
		return Badge{Color: ColorBlue, Icon: IconStar, Action: ActionSubscribe}
	default:
		return unknownBadge
	}
}

func ClassifyDeployment(status string) Badge {
	switch models.DeploymentStatus(status) {
	case models.DeploymentDeployed:
		return Badge{Color: ColorGreen, Icon: IconCheckCircle}
	case models.DeploymentDeploying:
		return Badge{Color: ColorYellow, Icon: IconLoader}
	case models.DeploymentFailed:
		return Badge{Color: ColorRed, Icon: IconXCircle}
	default:
		return unknownBadge
	}
}

// Classes returns the background/text utility class pair for the color.
func (b Badge) Classes() string {
	return fmt.Sprintf("bg-%s-100 text-%s-800", b.Color, b.Color)
}

// FormatPrice renders a price for display, e.g. "$15.49/monthly".
func FormatPrice(price models.Money, cycle models.BillingCycle) string {
	if cycle == "" {
		return "$" + price.String()
	}
	return fmt.Sprintf("$%s/%s", price, cycle)
}
