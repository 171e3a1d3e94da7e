package rebinder

import (
	"expvar"
	"fmt"
)

// Get an *expvar.Int with the given path.
func getVarInt(base string, id string, name string) *expvar.Int {
	fullname := fmt.Sprintf("rebinder.%s.%s.%s", base, id, name)
	if v := expvar.Get(fullname); v != nil {
		return v.(*expvar.Int)
	}
	return expvar.NewInt(fullname)
}

// Get an *expvar.Map with the given path.
func getVarMap(base string, id string, name string) *expvar.Map {
	fullname := fmt.Sprintf("rebinder.%s.%s.%s", base, id, name)
	if v := expvar.Get(fullname); v != nil {
		return v.(*expvar.Map)
	}
	return expvar.NewMap(fullname)
}

// ListenerMetrics are kept per listener.
type ListenerMetrics struct {
	// Count of queries received.
	query *expvar.Int
	// Count of responses by rcode.
	response *expvar.Map
	// Count of failures by stage (read, unpack, pack, write, panic).
	err *expvar.Map
	// Count of datagrams received while all workers were busy.
	busy *expvar.Int
}

// NewListenerMetrics returns the metrics of a listener, registered under rebinder.<base>.<id>.
func NewListenerMetrics(base string, id string) *ListenerMetrics {
	return &ListenerMetrics{
		query:    getVarInt(base, id, "query"),
		response: getVarMap(base, id, "response"),
		err:      getVarMap(base, id, "error"),
		busy:     getVarInt(base, id, "busy"),
	}
}

// ServiceMetrics count resolution outcomes.
type ServiceMetrics struct {
	outcome *expvar.Map
	abuse   *expvar.Int
}

// NewServiceMetrics returns the metrics of a resolution service.
func NewServiceMetrics(id string) *ServiceMetrics {
	return &ServiceMetrics{
		outcome: getVarMap("service", id, "outcome"),
		abuse:   getVarInt("service", id, "abuse"),
	}
}
