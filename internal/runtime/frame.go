package runtime

import "github.com/aretw0/sail/pkg/render"

// HTML serializes the frame's view.
func (f *Frame) HTML() string {
	if f == nil || f.View == nil {
		return ""
	}
	return render.HTML(f.View)
}
