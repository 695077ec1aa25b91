// SPDX-License-Identifier: Apache-2.0

// Package synth converts a canonical Answer into the platform's rich
// response wire shape. Synthesize is a pure function of its input; it
// enforces the platform's structural constraints and reports
// violations as ErrConflictingContent.
package synth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DeanCording/node-red-contrib-google-action/internal/dialog"
	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

// ErrConflictingContent marks answers that violate the platform's
// mutual-exclusion or close/suggestion rules. These are usage errors by
// the consumer, rejected before any content reaches the wire.
var ErrConflictingContent = errors.New("conflicting content")

// ssmlSentinel marks speech markup. The prefix match covers both
// "<speak>" and "<speak ...>" openings.
const ssmlSentinel = "<speak"

// Synthesize builds the wire response for one Answer.
func Synthesize(a dialog.Answer) (*gaction.AppResponse, error) {
	resp := &gaction.AppResponse{
		ConversationToken:  a.DialogState,
		ExpectUserResponse: !a.Close,
	}

	switch p := a.Payload.(type) {
	case dialog.Speech:
		rich := &gaction.RichResponse{
			Items: []gaction.Item{{SimpleResponse: simpleResponse(p.Text, p.DisplayText)}},
		}
		return finish(resp, a.Close, rich)

	case dialog.Rich:
		return synthesizeRich(resp, a.Close, p)

	case dialog.Selection:
		if a.Close {
			return nil, fmt.Errorf("%w: selection prompt on a closing answer", ErrConflictingContent)
		}
		spec, err := optionSpec(p, false)
		if err != nil {
			return nil, err
		}
		return finishPrompt(resp, p.Prompt, gaction.IntentOption, spec)

	case dialog.DateTimeRequest:
		if a.Close {
			return nil, fmt.Errorf("%w: date/time prompt on a closing answer", ErrConflictingContent)
		}
		spec := &gaction.DateTimeValueSpec{
			Type: gaction.TypeDateTimeValueSpec,
			DialogSpec: &gaction.DateTimeDialog{
				RequestDatetimeText: p.Prompt,
				RequestDateText:     p.DatePrompt,
				RequestTimeText:     p.TimePrompt,
			},
		}
		return finishPrompt(resp, "", gaction.IntentDateTime, spec)

	case dialog.ConfirmationRequest:
		if a.Close {
			return nil, fmt.Errorf("%w: confirmation prompt on a closing answer", ErrConflictingContent)
		}
		spec := &gaction.ConfirmationValueSpec{
			Type:       gaction.TypeConfirmationValueSpec,
			DialogSpec: &gaction.ConfirmationDialog{RequestConfirmationText: p.Prompt},
		}
		return finishPrompt(resp, "", gaction.IntentConfirmation, spec)

	case dialog.PermissionRequest:
		if a.Close {
			return nil, fmt.Errorf("%w: permission prompt on a closing answer", ErrConflictingContent)
		}
		if len(p.Permissions) == 0 {
			return nil, fmt.Errorf("%w: permission request without permissions", ErrConflictingContent)
		}
		spec := &gaction.PermissionValueSpec{
			Type:        gaction.TypePermissionValueSpec,
			OptContext:  p.Context,
			Permissions: p.Permissions,
		}
		return finishPrompt(resp, "", gaction.IntentPermission, spec)

	case nil:
		return nil, fmt.Errorf("%w: answer has no payload", ErrConflictingContent)

	default:
		return nil, fmt.Errorf("%w: unsupported payload type %T", ErrConflictingContent, p)
	}
}

// Fallback builds the closing spoken response substituted when an
// answer cannot be synthesized or never arrived. It cannot fail.
func Fallback(text, dialogState string) *gaction.AppResponse {
	return &gaction.AppResponse{
		ConversationToken:  dialogState,
		ExpectUserResponse: false,
		FinalResponse: &gaction.FinalResponse{
			RichResponse: &gaction.RichResponse{
				Items: []gaction.Item{{SimpleResponse: simpleResponse(text, "")}},
			},
		},
	}
}

func synthesizeRich(resp *gaction.AppResponse, closing bool, p dialog.Rich) (*gaction.AppResponse, error) {
	kinds := 0
	if p.Card != nil {
		kinds++
	}
	if p.Image != nil {
		kinds++
	}
	if p.Carousel != nil {
		kinds++
	}
	if p.BrowseCarousel != nil {
		kinds++
	}
	if kinds > 1 {
		return nil, fmt.Errorf("%w: card, image, carousel and browse carousel are mutually exclusive", ErrConflictingContent)
	}
	if closing && (len(p.Suggestions) > 0 || p.LinkOut != nil) {
		return nil, fmt.Errorf("%w: suggestions are forbidden when closing the conversation", ErrConflictingContent)
	}
	if closing && p.Carousel != nil {
		return nil, fmt.Errorf("%w: option carousel on a closing answer", ErrConflictingContent)
	}

	rich := &gaction.RichResponse{}
	if p.Prompt != "" {
		rich.Items = append(rich.Items, gaction.Item{SimpleResponse: simpleResponse(p.Prompt, "")})
	}
	switch {
	case p.Card != nil:
		rich.Items = append(rich.Items, gaction.Item{BasicCard: basicCard(p.Card)})
	case p.Image != nil:
		rich.Items = append(rich.Items, gaction.Item{BasicCard: &gaction.BasicCard{Image: image(p.Image)}})
	case p.BrowseCarousel != nil:
		rich.Items = append(rich.Items, gaction.Item{CarouselBrowse: browseCarousel(p.BrowseCarousel)})
	}
	for _, s := range p.Suggestions {
		rich.Suggestions = append(rich.Suggestions, gaction.Suggestion{Title: s})
	}
	if p.LinkOut != nil {
		rich.LinkOutSuggestion = &gaction.LinkOutSuggestion{
			DestinationName: p.LinkOut.Name,
			URL:             p.LinkOut.URL,
		}
	}

	if p.Carousel != nil {
		spec, err := optionSpec(*p.Carousel, true)
		if err != nil {
			return nil, err
		}
		resp.ExpectedInputs = []gaction.ExpectedInput{{
			InputPrompt:     &gaction.InputPrompt{RichInitialPrompt: rich},
			PossibleIntents: []gaction.ExpectedIntent{{Intent: gaction.IntentOption, InputValueData: spec}},
		}}
		return resp, nil
	}
	return finish(resp, closing, rich)
}

// finish attaches the rich response as either the terminal prompt or
// the next expected input. Non-terminal responses always name at least
// the free-text intent so the platform keeps listening.
func finish(resp *gaction.AppResponse, closing bool, rich *gaction.RichResponse) (*gaction.AppResponse, error) {
	if closing {
		resp.FinalResponse = &gaction.FinalResponse{RichResponse: rich}
		return resp, nil
	}
	resp.ExpectedInputs = []gaction.ExpectedInput{{
		InputPrompt:     &gaction.InputPrompt{RichInitialPrompt: rich},
		PossibleIntents: []gaction.ExpectedIntent{{Intent: gaction.IntentText}},
	}}
	return resp, nil
}

// finishPrompt attaches a helper system intent with its value spec. The
// platform speaks the dialog spec's own prompt text, so the rich prompt
// is only included when explicitly provided.
func finishPrompt(resp *gaction.AppResponse, prompt, intent string, spec any) (*gaction.AppResponse, error) {
	expected := gaction.ExpectedInput{
		PossibleIntents: []gaction.ExpectedIntent{{Intent: intent, InputValueData: spec}},
	}
	if prompt != "" {
		expected.InputPrompt = &gaction.InputPrompt{
			RichInitialPrompt: &gaction.RichResponse{
				Items: []gaction.Item{{SimpleResponse: simpleResponse(prompt, "")}},
			},
		}
	}
	resp.ExpectedInputs = []gaction.ExpectedInput{expected}
	return resp, nil
}

func optionSpec(sel dialog.Selection, carousel bool) (*gaction.OptionValueSpec, error) {
	if len(sel.Options) == 0 {
		return nil, fmt.Errorf("%w: selection without options", ErrConflictingContent)
	}
	items := make([]gaction.OptionItem, 0, len(sel.Options))
	for _, o := range sel.Options {
		if o.Key == "" {
			return nil, fmt.Errorf("%w: selection option without key", ErrConflictingContent)
		}
		items = append(items, gaction.OptionItem{
			OptionInfo:  &gaction.OptionInfo{Key: o.Key, Synonyms: o.Synonyms},
			Title:       o.Title,
			Description: o.Description,
			Image:       image(o.Image),
		})
	}
	spec := &gaction.OptionValueSpec{Type: gaction.TypeOptionValueSpec}
	if carousel {
		spec.CarouselSelect = &gaction.CarouselSelect{Items: items}
	} else {
		spec.ListSelect = &gaction.ListSelect{Title: sel.Title, Items: items}
	}
	return spec, nil
}

func basicCard(c *dialog.Card) *gaction.BasicCard {
	card := &gaction.BasicCard{
		Title:               c.Title,
		Subtitle:            c.Subtitle,
		FormattedText:       c.Body,
		Image:               image(c.Image),
		ImageDisplayOptions: c.ImageDisplay,
	}
	for _, b := range c.Buttons {
		card.Buttons = append(card.Buttons, gaction.Button{
			Title:         b.Label,
			OpenURLAction: &gaction.OpenURLAction{URL: b.URL},
		})
	}
	return card
}

func browseCarousel(bc *dialog.BrowseCarousel) *gaction.CarouselBrowse {
	out := &gaction.CarouselBrowse{Items: make([]gaction.BrowseItem, 0, len(bc.Items))}
	for _, it := range bc.Items {
		out.Items = append(out.Items, gaction.BrowseItem{
			Title:         it.Title,
			Description:   it.Description,
			Footer:        it.Footer,
			Image:         image(it.Image),
			OpenURLAction: &gaction.OpenURLAction{URL: it.URL},
		})
	}
	return out
}

func image(i *dialog.ImageSpec) *gaction.Image {
	if i == nil {
		return nil
	}
	return &gaction.Image{
		URL:               i.URL,
		AccessibilityText: i.AltText,
		Height:            i.Height,
		Width:             i.Width,
	}
}

// simpleResponse wraps text as speech, selecting SSML when the text
// begins with the markup sentinel. The two fields are mutually
// exclusive on the wire.
func simpleResponse(text, display string) *gaction.SimpleResponse {
	sr := &gaction.SimpleResponse{DisplayText: display}
	if strings.HasPrefix(strings.TrimSpace(text), ssmlSentinel) {
		sr.SSML = text
	} else {
		sr.TextToSpeech = text
	}
	return sr
}
