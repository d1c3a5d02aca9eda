/*
Package dsl provides the SAIL node constructors.

Each constructor is a pure function from a configuration value to a node.
Constructors never validate their input: a missing label renders as empty and
missing contents render as no children.

The same functions back the names a SAIL document can call:

	a_formLayout({label: "Profile", contents: [
		a_textField({label: "Name", value: "", saveInto: "name"}),
		a_if(state.name !== "", a_buttonWidget({label: "Save"}))
	]})
*/
package dsl
