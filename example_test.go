package sail_test

import (
	"context"
	"fmt"

	"github.com/aretw0/sail"
)

func ExamplePlayground() {
	ctx := context.Background()
	pg := sail.New(ctx, `a_textField({label: "Name", saveInto: "name"})`)

	frame, _ := pg.Input(ctx, "name", "Ada")
	fmt.Println(frame.HTML())
	fmt.Println(pg.State())
	// Output:
	// <div class="textField"><label>Name</label><input type="text" value="Ada" name="name" data-sail-bind="name"/></div>
	// map[name:Ada]
}
