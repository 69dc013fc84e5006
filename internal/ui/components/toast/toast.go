package toast

import "github.com/a-h/templ"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Props struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
	Class       string
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-gray-200 bg-white text-gray-900",
	VariantSuccess: "border-green-200 bg-green-50 text-green-900",
	VariantError:   "border-red-200 bg-red-50 text-red-900",
	VariantWarning: "border-yellow-200 bg-yellow-50 text-yellow-900",
	VariantInfo:    "border-blue-200 bg-blue-50 text-blue-900",
}

var variantIcons = map[Variant]string{
	VariantDefault: "🔔",
	VariantSuccess: "✅",
	VariantError:   "⚠️",
	VariantWarning: "⚠️",
	VariantInfo:    "ℹ️",
}

// Toast renders a notification. Handlers append it to #toast-container
// out of band.
func Toast(props Props) templ.Component {
	if props.Variant == "" {
		props.Variant = VariantDefault
	}

	return toast(props)
}

func Error(description string) templ.Component {
	return Toast(Props{
		Title:       "Error",
		Description: description,
		Variant:     VariantError,
		Icon:        true,
		Dismissible: true,
	})
}

func Success(description string) templ.Component {
	return Toast(Props{
		Title:       "Success",
		Description: description,
		Variant:     VariantSuccess,
		Icon:        true,
		Dismissible: true,
	})
}
