// Package form renders the inputs shared by the auth, goal and chat pages.
package form

import (
	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/ui"
)

type Option struct {
	Value string
	Label string
}

type InputProps struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	MaxLength   int
	Class       string
}

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonGhost     ButtonVariant = "ghost"
)

type ButtonProps struct {
	Label      string
	Type       string
	Variant    ButtonVariant
	Class      string
	Attributes templ.Attributes
}

const (
	inputClass = "mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 text-sm shadow-sm focus:border-indigo-500 focus:outline-none focus:ring-1 focus:ring-indigo-500"
	errorClass = "border-red-400 focus:border-red-500 focus:ring-red-500"
)

var buttonClasses = map[ButtonVariant]string{
	ButtonPrimary:   "bg-indigo-600 text-white hover:bg-indigo-700",
	ButtonSecondary: "border border-gray-300 bg-white text-gray-700 hover:bg-gray-50",
	ButtonGhost:     "text-gray-600 hover:text-gray-900",
}

func fieldClass(errMessage string) string {
	if errMessage != "" {
		return ui.Class(inputClass, errorClass)
	}
	return inputClass
}

func Input(props InputProps) templ.Component {
	if props.Type == "" {
		props.Type = "text"
	}
	if props.ID == "" {
		props.ID = props.Name
	}
	return input(props)
}

func Textarea(props InputProps) templ.Component {
	if props.ID == "" {
		props.ID = props.Name
	}
	return textarea(props)
}

func Select(props InputProps, options []Option) templ.Component {
	if props.ID == "" {
		props.ID = props.Name
	}
	return selectField(props, options)
}

func Button(props ButtonProps) templ.Component {
	if props.Type == "" {
		props.Type = "submit"
	}
	if props.Variant == "" {
		props.Variant = ButtonPrimary
	}
	return button(props)
}
