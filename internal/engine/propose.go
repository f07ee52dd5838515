package engine

import "github.com/piwi3910/fenestra/internal/model"

// Usage names of the spaces next to a wall.
const (
	UsageLiving      = "living"
	UsageRetail      = "retail"
	UsageToilet      = "toilet"
	UsageKitchen     = "kitchen"
	UsageBedroom     = "bedroom"
	UsageCirculation = "circulation"
	UsageStair       = "stair"
)

// Opening names looked up in the style.
const (
	UndefinedOutsideWindow   = "undefined outside window"
	LivingOutsideWindow      = "living outside window"
	ToiletOutsideWindow      = "toilet outside window"
	KitchenOutsideWindow     = "kitchen outside window"
	BedroomOutsideWindow     = "bedroom outside window"
	CirculationOutsideWindow = "circulation outside window"
	RetailEntrance           = "retail entrance"
	HouseEntrance            = "house entrance"
	LivingOutsideDoor        = "living outside door"
	LivingInsideDoor         = "living inside door"
)

// placeholderAlong is where proposals sit until they are aligned.
const placeholderAlong = 0.5

func request(name string) model.Opening {
	return model.Opening{Name: name, Along: placeholderAlong, Size: 0}
}

// ProposeExterior returns the initial requests for an exterior segment,
// driven by the usage of the space behind it.
func (e *Engine) ProposeExterior(w model.Wall, segment int) model.Openings {
	ctx := w.Context(segment)
	var openings model.Openings

	switch ctx.Usage {
	case "":
		openings = append(openings, request(UndefinedOutsideWindow))
	case UsageLiving, UsageRetail:
		openings = append(openings, request(LivingOutsideWindow))
	case UsageToilet:
		openings = append(openings, request(ToiletOutsideWindow))
	case UsageKitchen:
		openings = append(openings, request(KitchenOutsideWindow))
	case UsageBedroom:
		openings = append(openings, request(BedroomOutsideWindow))
	case UsageCirculation, UsageStair:
		openings = append(openings, request(CirculationOutsideWindow))
	}

	if w.Level == 0 {
		switch ctx.Usage {
		case UsageRetail:
			openings = append(openings, request(RetailEntrance))
		case UsageCirculation:
			openings = append(openings, request(HouseEntrance))
		}
	}

	if ctx.Access && ctx.Usage != UsageToilet {
		openings = append(openings, request(LivingOutsideDoor))
	}

	e.log().Debug("exterior proposals", "wall", w.ID, "segment", segment, "usage", ctx.Usage, "count", len(openings))
	return openings
}

// ProposeInterior returns the single door request of an interior segment.
func (e *Engine) ProposeInterior(w model.Wall, segment int) model.Openings {
	return model.Openings{request(LivingInsideDoor)}
}
