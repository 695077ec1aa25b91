// SPDX-License-Identifier: Apache-2.0

package gaction

// AppResponse is the payload returned for one conversation webhook call.
// Exactly one of ExpectedInputs (conversation continues) or
// FinalResponse (conversation ends) is populated.
type AppResponse struct {
	ConversationToken  string          `json:"conversationToken,omitempty"`
	ExpectUserResponse bool            `json:"expectUserResponse"`
	ExpectedInputs     []ExpectedInput `json:"expectedInputs,omitempty"`
	FinalResponse      *FinalResponse  `json:"finalResponse,omitempty"`
}

// ExpectedInput describes the next input the platform should collect.
type ExpectedInput struct {
	InputPrompt     *InputPrompt     `json:"inputPrompt,omitempty"`
	PossibleIntents []ExpectedIntent `json:"possibleIntents,omitempty"`
}

// ExpectedIntent names an intent the platform should resolve next,
// optionally with a typed value spec (list select, date/time dialog...).
type ExpectedIntent struct {
	Intent         string `json:"intent"`
	InputValueData any    `json:"inputValueData,omitempty"`
}

// InputPrompt wraps the prompt spoken while collecting the next input.
type InputPrompt struct {
	RichInitialPrompt *RichResponse    `json:"richInitialPrompt,omitempty"`
	NoInputPrompts    []SimpleResponse `json:"noInputPrompts,omitempty"`
}

// FinalResponse is the terminal prompt of a conversation.
type FinalResponse struct {
	RichResponse *RichResponse `json:"richResponse,omitempty"`
}

// RichResponse is an ordered collection of response items plus
// optional suggestion chips.
type RichResponse struct {
	Items             []Item             `json:"items,omitempty"`
	Suggestions       []Suggestion       `json:"suggestions,omitempty"`
	LinkOutSuggestion *LinkOutSuggestion `json:"linkOutSuggestion,omitempty"`
}

// Item holds exactly one response element.
type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
	BasicCard      *BasicCard      `json:"basicCard,omitempty"`
	CarouselBrowse *CarouselBrowse `json:"carouselBrowse,omitempty"`
}

// SimpleResponse is spoken (and optionally displayed) text. TextToSpeech
// and SSML are mutually exclusive.
type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech,omitempty"`
	SSML         string `json:"ssml,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// Suggestion is one suggestion chip.
type Suggestion struct {
	Title string `json:"title"`
}

// LinkOutSuggestion is a chip that leaves the conversation.
type LinkOutSuggestion struct {
	DestinationName string `json:"destinationName,omitempty"`
	URL             string `json:"url,omitempty"`
}

// BasicCard is a card with text, an image and up to one set of buttons.
type BasicCard struct {
	Title               string   `json:"title,omitempty"`
	Subtitle            string   `json:"subtitle,omitempty"`
	FormattedText       string   `json:"formattedText,omitempty"`
	Image               *Image   `json:"image,omitempty"`
	Buttons             []Button `json:"buttons,omitempty"`
	ImageDisplayOptions string   `json:"imageDisplayOptions,omitempty"`
}

// Image is a displayed image with accessibility text.
type Image struct {
	URL               string `json:"url"`
	AccessibilityText string `json:"accessibilityText,omitempty"`
	Height            int    `json:"height,omitempty"`
	Width             int    `json:"width,omitempty"`
}

// Button is a labeled link on a card.
type Button struct {
	Title         string         `json:"title,omitempty"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

// OpenURLAction opens a URL when its button is pressed.
type OpenURLAction struct {
	URL string `json:"url"`
}

// CarouselBrowse is an ordered list of browsable, linked items.
type CarouselBrowse struct {
	Items []BrowseItem `json:"items"`
}

// BrowseItem is one entry of a browse carousel.
type BrowseItem struct {
	Title         string         `json:"title,omitempty"`
	Description   string         `json:"description,omitempty"`
	Footer        string         `json:"footer,omitempty"`
	Image         *Image         `json:"image,omitempty"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

// OptionValueSpec asks the user to pick from a list or carousel of
// keyed options. One of ListSelect or CarouselSelect is populated.
type OptionValueSpec struct {
	Type           string          `json:"@type"`
	ListSelect     *ListSelect     `json:"listSelect,omitempty"`
	CarouselSelect *CarouselSelect `json:"carouselSelect,omitempty"`
}

// ListSelect is a titled list of selectable options.
type ListSelect struct {
	Title string       `json:"title,omitempty"`
	Items []OptionItem `json:"items"`
}

// CarouselSelect is a horizontally browsable set of selectable options.
type CarouselSelect struct {
	Items []OptionItem `json:"items"`
}

// OptionItem is one selectable entry.
type OptionItem struct {
	OptionInfo  *OptionInfo `json:"optionInfo,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Image       *Image      `json:"image,omitempty"`
}

// OptionInfo keys an option and lists voice-matching synonyms.
type OptionInfo struct {
	Key      string   `json:"key"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// DateTimeValueSpec asks the user for a date and/or time.
type DateTimeValueSpec struct {
	Type       string          `json:"@type"`
	DialogSpec *DateTimeDialog `json:"dialogSpec,omitempty"`
}

// DateTimeDialog customizes the date/time collection prompts.
type DateTimeDialog struct {
	RequestDatetimeText string `json:"requestDatetimeText,omitempty"`
	RequestDateText     string `json:"requestDateText,omitempty"`
	RequestTimeText     string `json:"requestTimeText,omitempty"`
}

// ConfirmationValueSpec asks the user a yes/no question.
type ConfirmationValueSpec struct {
	Type       string              `json:"@type"`
	DialogSpec *ConfirmationDialog `json:"dialogSpec,omitempty"`
}

// ConfirmationDialog customizes the confirmation prompt.
type ConfirmationDialog struct {
	RequestConfirmationText string `json:"requestConfirmationText,omitempty"`
}

// PermissionValueSpec asks the user to grant permissions.
type PermissionValueSpec struct {
	Type        string   `json:"@type"`
	OptContext  string   `json:"optContext,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}
