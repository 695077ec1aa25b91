// SPDX-License-Identifier: Apache-2.0

package gaction

// AppRequest is the payload of one inbound conversation webhook call.
type AppRequest struct {
	User         *User         `json:"user,omitempty"`
	Conversation *Conversation `json:"conversation,omitempty"`
	Inputs       []Input       `json:"inputs,omitempty"`
	Surface      *Surface      `json:"surface,omitempty"`
	IsInSandbox  bool          `json:"isInSandbox,omitempty"`
}

// User identifies the speaker.
type User struct {
	UserID      string `json:"userId,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// Conversation carries the platform's conversation bookkeeping.
type Conversation struct {
	ConversationID    string `json:"conversationId,omitempty"`
	Type              string `json:"type,omitempty"`
	ConversationToken string `json:"conversationToken,omitempty"`
}

// Input is one user action within a request.
type Input struct {
	Intent    string     `json:"intent,omitempty"`
	RawInputs []RawInput `json:"rawInputs,omitempty"`
	Arguments []Argument `json:"arguments,omitempty"`
}

// RawInput holds the unparsed user utterance.
type RawInput struct {
	InputType string `json:"inputType,omitempty"`
	Query     string `json:"query,omitempty"`
}

// Argument is one typed value attached to an input. Exactly one of the
// value fields is populated, depending on the intent that produced it.
type Argument struct {
	Name            string         `json:"name,omitempty"`
	RawText         string         `json:"rawText,omitempty"`
	TextValue       string         `json:"textValue,omitempty"`
	IntValue        int64          `json:"intValue,omitempty,string"`
	FloatValue      float64        `json:"floatValue,omitempty"`
	BoolValue       *bool          `json:"boolValue,omitempty"`
	DatetimeValue   *DateTime      `json:"datetimeValue,omitempty"`
	PlaceValue      *Location      `json:"placeValue,omitempty"`
	Extension       map[string]any `json:"extension,omitempty"`
	StructuredValue map[string]any `json:"structuredValue,omitempty"`
}

// DateTime is the platform's date/time answer value.
type DateTime struct {
	Date *Date `json:"date,omitempty"`
	Time *Time `json:"time,omitempty"`
}

// Date is a calendar date.
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Time is a wall-clock time.
type Time struct {
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}

// Location is the platform's place answer value.
type Location struct {
	Coordinates      *LatLng `json:"coordinates,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	Name             string  `json:"name,omitempty"`
	PlaceID          string  `json:"placeId,omitempty"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Surface describes the capabilities of the user's device.
type Surface struct {
	Capabilities []Capability `json:"capabilities,omitempty"`
}

// Capability is one device capability name.
type Capability struct {
	Name string `json:"name,omitempty"`
}
