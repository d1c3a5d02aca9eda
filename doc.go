/*
Package sail is a playground for SAIL, a tiny declarative UI language.

A SAIL document is a single expression built from widget constructors:

	a_formLayout({
	  label: "User Form",
	  contents: [
	    a_textField({ label: "Name", saveInto: "name" }),
	    a_if(state.name === "admin", a_buttonWidget({ label: "Go" }))
	  ]
	})

Evaluating the document yields a tree of plain nodes. The tree is rendered to
HTML; controls write their values into the playground state under their
saveInto key and every write runs the whole cycle again, so conditional parts
of the form react to what the user typed.

# Usage

	ctx := context.Background()
	pg := sail.New(ctx, source)

	frame, err := pg.Input(ctx, "name", "admin")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(frame.HTML())
	fmt.Println(pg.Dump(sail.DumpHistory))

Failed cycles keep the previous history and show the error in place of the
form. The history holds a deep copy of every tree that rendered.
*/
package sail
