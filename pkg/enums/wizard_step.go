package enums

// WizardStep identifies a state of the booking checkout flow. The flow is
// strictly linear: cart_review -> contact -> address -> schedule ->
// confirmation, with confirmation terminal.
type WizardStep string

const (
	StepCartReview   WizardStep = "cart_review"
	StepContact      WizardStep = "contact"
	StepAddress      WizardStep = "address"
	StepSchedule     WizardStep = "schedule"
	StepConfirmation WizardStep = "confirmation"
)

var wizardOrder = []WizardStep{
	StepCartReview,
	StepContact,
	StepAddress,
	StepSchedule,
	StepConfirmation,
}

func (s WizardStep) String() string {
	return string(s)
}

func (s WizardStep) IsValid() bool {
	for _, step := range wizardOrder {
		if s == step {
			return true
		}
	}
	return false
}

// Next returns the step after s, or s itself when terminal.
func (s WizardStep) Next() WizardStep {
	for i, step := range wizardOrder {
		if s == step && i+1 < len(wizardOrder) {
			return wizardOrder[i+1]
		}
	}
	return s
}

// Prev returns the step before s. Cart review and confirmation have no
// backward transition; they return themselves.
func (s WizardStep) Prev() WizardStep {
	if s == StepConfirmation {
		return s
	}
	for i, step := range wizardOrder {
		if s == step && i > 0 {
			return wizardOrder[i-1]
		}
	}
	return s
}
