package ia

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/naio/logging"
)

// Attributes are the free form settings of an agent, as read from the host config.
type Attributes map[string]interface{}

// A CreateAgent builds the handler table of an agent model. Handlers write their event lines to
// out.
type CreateAgent func(ctx context.Context, attrs Attributes, out io.Writer, logger logging.Logger) (*Callbacks, error)

// Registration describes how to build an agent model.
type Registration struct {
	Constructor CreateAgent
}

var (
	agentRegistryMu sync.RWMutex
	agentRegistry   = map[string]Registration{}
)

// RegisterAgent registers an agent model. Registering the same model twice panics.
func RegisterAgent(model string, reg Registration) {
	agentRegistryMu.Lock()
	defer agentRegistryMu.Unlock()

	if _, old := agentRegistry[model]; old {
		panic(errors.Errorf("trying to register two agents with same model %s", model))
	}
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for agent model %s", model))
	}
	agentRegistry[model] = reg
}

// LookupAgent looks up an agent registration by model.
func LookupAgent(model string) (Registration, bool) {
	agentRegistryMu.RLock()
	defer agentRegistryMu.RUnlock()
	reg, ok := agentRegistry[model]
	return reg, ok
}

// RegisteredAgents returns the sorted names of all registered agent models.
func RegisteredAgents() []string {
	agentRegistryMu.RLock()
	defer agentRegistryMu.RUnlock()
	models := lo.Keys(agentRegistry)
	sort.Strings(models)
	return models
}

// NewAgent builds the named agent model and checks that it handles every event.
func NewAgent(ctx context.Context, model string, attrs Attributes, out io.Writer, logger logging.Logger) (*Callbacks, error) {
	reg, ok := LookupAgent(model)
	if !ok {
		return nil, errors.Errorf("unknown agent model %q, registered models: %v", model, RegisteredAgents())
	}
	callbacks, err := reg.Constructor(ctx, attrs, out, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build agent %q", model)
	}
	if err := callbacks.Validate(); err != nil {
		return nil, errors.Wrapf(err, "agent %q", model)
	}
	return callbacks, nil
}

// DecodeAttributes decodes attributes into the struct pointed to by target, using its json
// tags. Unknown attributes are an error.
func DecodeAttributes(attrs Attributes, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(attrs))
}
