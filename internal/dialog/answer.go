// SPDX-License-Identifier: Apache-2.0

package dialog

// Answer is the consumer's normalized reply to a Turn.
type Answer struct {
	// Payload is the semantic content of the reply.
	Payload Payload

	// Close ends the conversation when true ("tell"); false keeps it
	// open awaiting another user turn ("ask").
	Close bool

	// DialogState is stored verbatim and returned on the next Turn of
	// this conversation.
	DialogState string
}

// Payload is the tagged union of answer contents. Exactly one concrete
// type is used per Answer.
type Payload interface {
	payload()
}

// Speech is plain spoken text. Text starting with the "<speak>" markup
// sentinel is delivered as SSML instead of text-to-speech.
type Speech struct {
	Text        string
	DisplayText string
}

// Rich is structured content accompanying a spoken prompt. At most one
// of Card, Image, Carousel and BrowseCarousel may be set; Suggestions
// are only valid on non-closing answers.
type Rich struct {
	Prompt         string
	Card           *Card
	Image          *ImageSpec
	Carousel       *Selection
	BrowseCarousel *BrowseCarousel
	Suggestions    []string
	LinkOut        *LinkOut
}

// Selection asks the user to pick one of a set of keyed options. It is
// presented as a list, or as a carousel when used via Rich.Carousel.
type Selection struct {
	Prompt  string
	Title   string
	Options []Option
}

// Option is one selectable entry with voice-matching synonyms.
type Option struct {
	Key         string
	Synonyms    []string
	Title       string
	Description string
	Image       *ImageSpec
}

// Card is a single card with text, image and buttons.
type Card struct {
	Title    string
	Subtitle string
	Body     string
	Image    *ImageSpec
	Buttons  []CardButton
	// ImageDisplay hints at image cropping ("DEFAULT", "WHITE", "CROPPED").
	ImageDisplay string
}

// CardButton is a labeled URL button.
type CardButton struct {
	Label string
	URL   string
}

// ImageSpec is an image reference with alt text.
type ImageSpec struct {
	URL     string
	AltText string
	Height  int
	Width   int
}

// BrowseCarousel is an ordered list of linked items.
type BrowseCarousel struct {
	Items []BrowseCarouselItem
}

// BrowseCarouselItem is one entry of a browse carousel.
type BrowseCarouselItem struct {
	Title       string
	Description string
	Footer      string
	URL         string
	Image       *ImageSpec
}

// LinkOut is a suggestion chip leaving the conversation.
type LinkOut struct {
	Name string
	URL  string
}

// DateTimeRequest asks the user for a date and/or time.
type DateTimeRequest struct {
	Prompt     string
	DatePrompt string
	TimePrompt string
}

// ConfirmationRequest asks the user a yes/no question.
type ConfirmationRequest struct {
	Prompt string
}

// PermissionRequest asks the user to grant platform permissions.
type PermissionRequest struct {
	Context     string
	Permissions []string
}

func (Speech) payload()              {}
func (Rich) payload()                {}
func (Selection) payload()           {}
func (DateTimeRequest) payload()     {}
func (ConfirmationRequest) payload() {}
func (PermissionRequest) payload()   {}
