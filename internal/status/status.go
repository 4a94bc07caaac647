// Package status renders the connection state reported by the transport.
// Transitions are owned by the transport; the view only reflects them.
package status

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/render"
)

// State is a connection state as reported on the wire.
type State string

const (
	New          State = "new"
	Connecting   State = "connecting"
	Connected    State = "connected"
	Reconnecting State = "reconnecting"
	Error        State = "error"
)

// Style classes applied to the state node.
const (
	ClassConnecting = "connecting"
	ClassConnected  = "connected"
	ClassFail       = "fail"
)

// Node kinds rendered under the status root.
const (
	KindState  = "state"
	KindClient = "client"
	KindHost   = "host"
)

// ErrUnknownState is returned for a state outside the known set. It
// indicates a broken transport and is not recoverable.
var ErrUnknownState = errors.New("unknown connection state")

type presentation struct {
	label string
	class string
}

var states = map[State]presentation{
	New:          {label: "", class: ClassConnecting},
	Connecting:   {label: "connecting...", class: ClassConnecting},
	Connected:    {label: "connected", class: ClassConnected},
	Reconnecting: {label: "reconnecting...", class: ClassConnecting},
	Error:        {label: "not connected", class: ClassFail},
}

var allClasses = []string{ClassConnecting, ClassConnected, ClassFail}

// ParseState accepts state names case-insensitively.
func ParseState(name string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := states[s]; !ok {
		return "", errors.Wrapf(ErrUnknownState, "%q", name)
	}
	return s, nil
}

// Label returns the text shown for s with the given attempt count.
func Label(s State, attempts int) (string, error) {
	p, ok := states[s]
	if !ok {
		return "", errors.Wrapf(ErrUnknownState, "%q", string(s))
	}
	if attempts > 1 {
		return fmt.Sprintf("%s (%d)", p.label, attempts), nil
	}
	return p.label, nil
}

// Event is a state report from the transport.
type Event struct {
	State             State  `json:"state"`
	ReconnectAttempts int    `json:"reconnectAttempts"`
	ClientID          string `json:"clientId"`
	EndpointURI       string `json:"endpointUri"`
}

// View owns the status footer nodes.
type View struct {
	r        render.Renderer
	state    State
	attempts int
	clientID string
	endpoint string

	stateNode  *render.Node
	clientNode *render.Node
	hostNode   *render.Node
}

// NewView builds the footer under root and renders the New state.
func NewView(r render.Renderer, root *render.Node) *View {
	v := &View{r: r}
	v.stateNode = r.Create(KindState, "")
	v.clientNode = r.Create(KindClient, "")
	v.hostNode = r.Create(KindHost, "")
	r.Append(root, v.stateNode)
	r.Append(root, v.clientNode)
	r.Append(root, v.hostNode)
	_ = v.SetState(New, 0)
	return v
}

func (v *View) State() State       { return v.state }
func (v *View) Attempts() int      { return v.attempts }
func (v *View) ClientID() string   { return v.clientID }
func (v *View) Endpoint() string   { return v.endpoint }
func (v *View) Node() *render.Node { return v.stateNode }

// SetState renders s. An unknown state leaves the view untouched and returns
// an error wrapping ErrUnknownState.
func (v *View) SetState(s State, attempts int) error {
	label, err := Label(s, attempts)
	if err != nil {
		return err
	}
	if attempts < 0 {
		attempts = 0
	}
	v.state = s
	v.attempts = attempts
	class := states[s].class
	for _, c := range allClasses {
		v.r.ToggleClass(v.stateNode, c, c == class)
	}
	v.r.SetText(v.stateNode, label)
	events.Status.Change(string(s), label, attempts)
	return nil
}

// SetClientID updates the client identifier shown in the footer.
func (v *View) SetClientID(id string) {
	v.clientID = id
	v.r.SetText(v.clientNode, id)
	events.Status.Meta(v.clientID, v.endpoint)
}

// SetEndpoint updates the endpoint URI shown in the footer.
func (v *View) SetEndpoint(uri string) {
	v.endpoint = uri
	v.r.SetText(v.hostNode, uri)
	events.Status.Meta(v.clientID, v.endpoint)
}

// Apply folds a full report into the view. Metadata is applied even when the
// state is rejected.
func (v *View) Apply(evt Event) error {
	if evt.ClientID != "" && evt.ClientID != v.clientID {
		v.SetClientID(evt.ClientID)
	}
	if evt.EndpointURI != "" && evt.EndpointURI != v.endpoint {
		v.SetEndpoint(evt.EndpointURI)
	}
	return v.SetState(evt.State, evt.ReconnectAttempts)
}
