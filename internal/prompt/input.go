package prompt

// Input is what the advisor answers: a raw farmer message that still needs
// classification, or a prompt that was fully built upstream.
type Input interface {
	isInput()
}

// Message is free text typed by the farmer.
type Message struct {
	Text string
}

// PreComposed is sent to the generator as-is. Disease-detection follow-ups
// arrive this way.
type PreComposed struct {
	Text string
}

func (Message) isInput()     {}
func (PreComposed) isInput() {}
