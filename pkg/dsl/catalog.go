package dsl

import (
	"fmt"
	"strings"
)

// Function describes one constructor visible to SAIL documents.
type Function struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Params      string `json:"params" yaml:"params"`
}

// Names under which the constructors are bound in a document's scope.
const (
	NameFormLayout    = "a_formLayout"
	NameTextField     = "a_textField"
	NameDropdownField = "a_dropdownField"
	NameButton        = "a_buttonWidget"
	NameIf            = "a_if"

	// NameState is the identifier through which documents read field values.
	NameState = "state"
)

// Catalog lists the constructors in documentation order.
var Catalog = []Function{
	{Name: NameFormLayout, Description: "Creates a form layout", Params: "config: {label:string, contents:Array}"},
	{Name: NameTextField, Description: "Creates a text field", Params: "config: {label:string, value:string, saveInto:string}"},
	{Name: NameDropdownField, Description: "Creates a dropdown field", Params: "config: {label:string, choices:Array<{label,value}>, saveInto:string}"},
	{Name: NameButton, Description: "Creates a button", Params: "config: {label:string}"},
	{Name: NameIf, Description: "Conditional render", Params: "condition:boolean, component:SAILNode"},
}

// Markdown renders the catalog as a markdown document.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# SAIL functions\n\n")
	for _, f := range Catalog {
		fmt.Fprintf(&b, "## `%s`\n\n%s.\n\n**Parameters:** `%s`\n\n", f.Name, f.Description, f.Params)
	}
	return b.String()
}

// DefaultSource is the document a fresh playground starts with.
const DefaultSource = `a_formLayout({
  label: "User Form",
  contents: [
    a_textField({
      label: "Name",
      value: "Aman Shekh",
      saveInto: "name"
    }),
    a_dropdownField({
      label: "Role",
      choices: [
        { label: "Admin", value: "admin" },
        { label: "User", value: "user" }
      ],
      saveInto: "role"
    }),
    a_if(
      state.role === "admin",
      a_textField({
        label: "Admin Code",
        value: "",
        saveInto: "code"
      })
    ),
    a_buttonWidget({
      label: "Submit"
    })
  ]
});
`
