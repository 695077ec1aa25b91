// SPDX-License-Identifier: Apache-2.0

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanCording/node-red-contrib-google-action/internal/dialog"
	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

func TestSynthesizeSimpleSpeechOpen(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload:     dialog.Speech{Text: "hi there"},
		Close:       false,
		DialogState: "s-1",
	})
	require.NoError(t, err)

	assert.True(t, resp.ExpectUserResponse)
	assert.Equal(t, "s-1", resp.ConversationToken)
	assert.Nil(t, resp.FinalResponse)
	require.Len(t, resp.ExpectedInputs, 1)

	in := resp.ExpectedInputs[0]
	require.NotNil(t, in.InputPrompt)
	require.Len(t, in.InputPrompt.RichInitialPrompt.Items, 1)
	sr := in.InputPrompt.RichInitialPrompt.Items[0].SimpleResponse
	require.NotNil(t, sr)
	assert.Equal(t, "hi there", sr.TextToSpeech)
	assert.Empty(t, sr.SSML)

	// The platform must know to keep listening.
	require.NotEmpty(t, in.PossibleIntents)
	assert.Equal(t, gaction.IntentText, in.PossibleIntents[0].Intent)
}

func TestSynthesizeSimpleSpeechClose(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Speech{Text: "Great, goodbye"},
		Close:   true,
	})
	require.NoError(t, err)

	assert.False(t, resp.ExpectUserResponse)
	assert.Empty(t, resp.ExpectedInputs)
	require.NotNil(t, resp.FinalResponse)
	require.Len(t, resp.FinalResponse.RichResponse.Items, 1)
	assert.Equal(t, "Great, goodbye", resp.FinalResponse.RichResponse.Items[0].SimpleResponse.TextToSpeech)
}

func TestSynthesizeSSMLSentinel(t *testing.T) {
	const markup = `<speak>Hello <break time="1s"/> world</speak>`
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Speech{Text: markup},
		Close:   true,
	})
	require.NoError(t, err)

	sr := resp.FinalResponse.RichResponse.Items[0].SimpleResponse
	assert.Equal(t, markup, sr.SSML)
	assert.Empty(t, sr.TextToSpeech, "ssml and text-to-speech are mutually exclusive")
}

func TestSynthesizeCard(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Rich{
			Prompt: "Here is what I found",
			Card: &dialog.Card{
				Title:    "Result",
				Subtitle: "subtitle",
				Body:     "body text",
				Image:    &dialog.ImageSpec{URL: "https://example.com/a.png", AltText: "a picture"},
				Buttons:  []dialog.CardButton{{Label: "Open", URL: "https://example.com"}},
			},
			Suggestions: []string{"more", "done"},
		},
	})
	require.NoError(t, err)

	rich := resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt
	require.Len(t, rich.Items, 2)
	assert.Equal(t, "Here is what I found", rich.Items[0].SimpleResponse.TextToSpeech)

	card := rich.Items[1].BasicCard
	require.NotNil(t, card)
	assert.Equal(t, "Result", card.Title)
	assert.Equal(t, "body text", card.FormattedText)
	require.NotNil(t, card.Image)
	assert.Equal(t, "a picture", card.Image.AccessibilityText)
	require.Len(t, card.Buttons, 1)
	assert.Equal(t, "Open", card.Buttons[0].Title)
	assert.Equal(t, "https://example.com", card.Buttons[0].OpenURLAction.URL)

	require.Len(t, rich.Suggestions, 2)
	assert.Equal(t, "more", rich.Suggestions[0].Title)
}

func TestSynthesizeStandaloneImage(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Rich{
			Prompt: "Look at this",
			Image:  &dialog.ImageSpec{URL: "https://example.com/pic.png", AltText: "pic"},
		},
	})
	require.NoError(t, err)

	rich := resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt
	require.Len(t, rich.Items, 2)
	card := rich.Items[1].BasicCard
	require.NotNil(t, card)
	assert.Empty(t, card.Title)
	assert.Equal(t, "https://example.com/pic.png", card.Image.URL)
}

func TestSynthesizeBrowseCarousel(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Rich{
			Prompt: "Pick a link",
			BrowseCarousel: &dialog.BrowseCarousel{Items: []dialog.BrowseCarouselItem{
				{Title: "One", Description: "first", URL: "https://example.com/1"},
				{Title: "Two", Description: "second", URL: "https://example.com/2"},
			}},
		},
	})
	require.NoError(t, err)

	rich := resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt
	require.Len(t, rich.Items, 2)
	cb := rich.Items[1].CarouselBrowse
	require.NotNil(t, cb)
	require.Len(t, cb.Items, 2)
	assert.Equal(t, "https://example.com/2", cb.Items[1].OpenURLAction.URL)
}

func TestSynthesizeSelectionList(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Selection{
			Prompt: "Which one?",
			Title:  "Options",
			Options: []dialog.Option{
				{Key: "a", Title: "Alpha", Synonyms: []string{"first"}},
				{Key: "b", Title: "Beta"},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.ExpectedInputs, 1)
	in := resp.ExpectedInputs[0]
	require.Len(t, in.PossibleIntents, 1)
	assert.Equal(t, gaction.IntentOption, in.PossibleIntents[0].Intent)

	spec, ok := in.PossibleIntents[0].InputValueData.(*gaction.OptionValueSpec)
	require.True(t, ok)
	assert.Equal(t, gaction.TypeOptionValueSpec, spec.Type)
	require.NotNil(t, spec.ListSelect)
	assert.Nil(t, spec.CarouselSelect)
	require.Len(t, spec.ListSelect.Items, 2)
	assert.Equal(t, "a", spec.ListSelect.Items[0].OptionInfo.Key)
	assert.Equal(t, []string{"first"}, spec.ListSelect.Items[0].OptionInfo.Synonyms)

	// The spoken prompt rides along as the initial prompt.
	require.NotNil(t, in.InputPrompt)
	assert.Equal(t, "Which one?", in.InputPrompt.RichInitialPrompt.Items[0].SimpleResponse.TextToSpeech)
}

func TestSynthesizeOptionCarousel(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.Rich{
			Prompt: "Take your pick",
			Carousel: &dialog.Selection{Options: []dialog.Option{
				{Key: "x", Title: "X"},
				{Key: "y", Title: "Y"},
			}},
		},
	})
	require.NoError(t, err)

	in := resp.ExpectedInputs[0]
	spec, ok := in.PossibleIntents[0].InputValueData.(*gaction.OptionValueSpec)
	require.True(t, ok)
	require.NotNil(t, spec.CarouselSelect)
	assert.Nil(t, spec.ListSelect)
	require.Len(t, spec.CarouselSelect.Items, 2)
}

func TestSynthesizeDateTimeRequest(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.DateTimeRequest{
			Prompt:     "When should I schedule it?",
			DatePrompt: "What day?",
			TimePrompt: "What time?",
		},
	})
	require.NoError(t, err)

	in := resp.ExpectedInputs[0]
	assert.Equal(t, gaction.IntentDateTime, in.PossibleIntents[0].Intent)
	spec, ok := in.PossibleIntents[0].InputValueData.(*gaction.DateTimeValueSpec)
	require.True(t, ok)
	assert.Equal(t, gaction.TypeDateTimeValueSpec, spec.Type)
	assert.Equal(t, "When should I schedule it?", spec.DialogSpec.RequestDatetimeText)
	assert.Equal(t, "What day?", spec.DialogSpec.RequestDateText)
}

func TestSynthesizeConfirmationRequest(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.ConfirmationRequest{Prompt: "Are you sure?"},
	})
	require.NoError(t, err)

	in := resp.ExpectedInputs[0]
	assert.Equal(t, gaction.IntentConfirmation, in.PossibleIntents[0].Intent)
	spec, ok := in.PossibleIntents[0].InputValueData.(*gaction.ConfirmationValueSpec)
	require.True(t, ok)
	assert.Equal(t, "Are you sure?", spec.DialogSpec.RequestConfirmationText)
}

func TestSynthesizePermissionRequest(t *testing.T) {
	resp, err := Synthesize(dialog.Answer{
		Payload: dialog.PermissionRequest{
			Context:     "To find you",
			Permissions: []string{gaction.PermissionDeviceLocation},
		},
	})
	require.NoError(t, err)

	in := resp.ExpectedInputs[0]
	assert.Equal(t, gaction.IntentPermission, in.PossibleIntents[0].Intent)
	spec, ok := in.PossibleIntents[0].InputValueData.(*gaction.PermissionValueSpec)
	require.True(t, ok)
	assert.Equal(t, "To find you", spec.OptContext)
	assert.Equal(t, []string{gaction.PermissionDeviceLocation}, spec.Permissions)
}

func TestSynthesizeConflictingContent(t *testing.T) {
	tests := []struct {
		name   string
		answer dialog.Answer
	}{
		{
			"card and carousel together",
			dialog.Answer{Payload: dialog.Rich{
				Card:     &dialog.Card{Title: "c"},
				Carousel: &dialog.Selection{Options: []dialog.Option{{Key: "k"}}},
			}},
		},
		{
			"card and image together",
			dialog.Answer{Payload: dialog.Rich{
				Card:  &dialog.Card{Title: "c"},
				Image: &dialog.ImageSpec{URL: "https://example.com/p.png"},
			}},
		},
		{
			"suggestions on closing answer",
			dialog.Answer{Close: true, Payload: dialog.Rich{
				Prompt:      "bye",
				Suggestions: []string{"again"},
			}},
		},
		{
			"link-out on closing answer",
			dialog.Answer{Close: true, Payload: dialog.Rich{
				Prompt:  "bye",
				LinkOut: &dialog.LinkOut{Name: "site", URL: "https://example.com"},
			}},
		},
		{
			"selection on closing answer",
			dialog.Answer{Close: true, Payload: dialog.Selection{
				Options: []dialog.Option{{Key: "k"}},
			}},
		},
		{
			"confirmation on closing answer",
			dialog.Answer{Close: true, Payload: dialog.ConfirmationRequest{Prompt: "sure?"}},
		},
		{
			"datetime on closing answer",
			dialog.Answer{Close: true, Payload: dialog.DateTimeRequest{Prompt: "when?"}},
		},
		{
			"permission on closing answer",
			dialog.Answer{Close: true, Payload: dialog.PermissionRequest{Permissions: []string{gaction.PermissionName}}},
		},
		{
			"permission without permissions",
			dialog.Answer{Payload: dialog.PermissionRequest{Context: "why"}},
		},
		{
			"selection without options",
			dialog.Answer{Payload: dialog.Selection{Prompt: "pick"}},
		},
		{
			"selection option without key",
			dialog.Answer{Payload: dialog.Selection{Options: []dialog.Option{{Title: "no key"}}}},
		},
		{
			"no payload",
			dialog.Answer{Close: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Synthesize(tt.answer)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConflictingContent)
			assert.Nil(t, resp, "conflicting content must never reach the wire")
		})
	}
}

func TestFallback(t *testing.T) {
	resp := Fallback("Sorry, something went wrong.", "s-9")
	assert.False(t, resp.ExpectUserResponse)
	assert.Equal(t, "s-9", resp.ConversationToken)
	require.NotNil(t, resp.FinalResponse)
	assert.Equal(t, "Sorry, something went wrong.", resp.FinalResponse.RichResponse.Items[0].SimpleResponse.TextToSpeech)
}
