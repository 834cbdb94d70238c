package anchor

import (
	"fmt"

	"github.com/gogpu/gef/scene"
)

// Key identifies an attachment: the anchored node and its role, such as
// "start" or "end" of a connection.
type Key struct {
	Anchored *scene.Node
	Role     string
}

// String returns "id#role".
func (k Key) String() string {
	if k.Anchored == nil {
		return fmt.Sprintf("<nil>#%s", k.Role)
	}
	return fmt.Sprintf("%s#%s", k.Anchored.ID(), k.Role)
}
