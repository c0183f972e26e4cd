package services

import (
	"fmt"
	"time"

	"shipdate-policy-service/internal/domain"
)

// Distance/day-of-week rule messages. Text is part of the business
// contract with the order desk; keep wording stable.
const (
	msgMondayCleared  = "Delivery distance on Monday is limited to 35 miles. The ship date has been cleared."
	msgMondayAdvisory = "Delivery distance on Monday is limited to 35 miles. Based on your user role, the ship date has not been cleared, but proceed with caution."

	msgLongRangeConditions = "Please Remember This is Outside of Our Covered Service Area and Will Be Serviced by a 3rd Party. The Following Conditions Must be Met When Scheduling Between 70 - 85 Miles: Mandatory $49.95 Delivery Fee, Additional $199.95 Per Trip Fee (use code LONGR), and Field Measure or VFM is Required"

	msgThursdayOnlyCleared  = "Delivery distances between 70-85 miles require a Thursday delivery. The ship date has been cleared."
	msgThursdayOnlyAdvisory = "Delivery distances between 70-85 miles require a Thursday delivery. Based on your user role, the ship date has not been cleared, but proceed with caution."

	msgTooFarCleared  = "Delivery distances greater than 85 miles are not permitted. Your ship date has been cleared."
	msgTooFarAdvisory = "Delivery distances greater than 85 miles are not permitted. Based on your user role, the ship date has not been cleared, but proceed with caution."
)

const msgBlackoutDate = "This date is closed for shipments, please select another date."

func alternateBlackoutMessage(code string) string {
	return fmt.Sprintf(
		"This order includes a %s special-handling item remaining to be completed and this date is closed for special-handling shipments, please select another date.",
		code,
	)
}

func lineCommitBlackoutMessage(code, dateText string) string {
	return fmt.Sprintf(
		"This newly added line is a %s special-handling item. The selected Ship Date (%s) is closed for special-handling shipments. The Ship Date has been cleared. Please select another ship date.",
		code, dateText,
	)
}

// Distance band limits in miles.
const (
	mondayLimitMiles  = 35
	longRangeLowMiles = 70
	longRangeHighMiles = 85
)

// EvaluateDistance applies the distance/day-of-week rule to a candidate
// ship date. It is pure: the caller decides when evaluation is due
// (future dates only) and how to apply the verdict.
//
// The Monday rule is checked before the distance bands: a Monday at
// 90 miles gets the Monday verdict, not the >85 one.
func EvaluateDistance(date time.Time, miles float64, enforced bool) domain.PolicyVerdict {
	day := date.Weekday()

	switch {
	case day == time.Monday && miles > mondayLimitMiles:
		if enforced {
			return domain.PolicyVerdict{Enforce: true, Message: msgMondayCleared}
		}
		return domain.PolicyVerdict{Message: msgMondayAdvisory}

	case miles >= longRangeLowMiles && miles <= longRangeHighMiles:
		// Thursday deliveries in the 70-85 band are admissible with
		// surcharge conditions; every other weekday is not.
		if day == time.Thursday {
			return domain.PolicyVerdict{Admissible: true, Message: msgLongRangeConditions}
		}
		if enforced {
			return domain.PolicyVerdict{Enforce: true, Message: msgThursdayOnlyCleared}
		}
		return domain.PolicyVerdict{Message: msgThursdayOnlyAdvisory}

	case miles > longRangeHighMiles:
		if enforced {
			return domain.PolicyVerdict{Enforce: true, Message: msgTooFarCleared}
		}
		return domain.PolicyVerdict{Message: msgTooFarAdvisory}

	default:
		return domain.PolicyVerdict{Admissible: true}
	}
}
