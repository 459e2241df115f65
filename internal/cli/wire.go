package cli

import (
	"context"
	"fmt"

	anthropicapi "github.com/anthropics/anthropic-sdk-go"
	openaiapi "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"

	synapseflow "github.com/hupe1980/synapseflow"
	"github.com/hupe1980/synapseflow/agent"
	"github.com/hupe1980/synapseflow/config"
	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/logging"
	"github.com/hupe1980/synapseflow/memory"
	"github.com/hupe1980/synapseflow/model"
	"github.com/hupe1980/synapseflow/model/anthropic"
	"github.com/hupe1980/synapseflow/model/openai"
	"github.com/hupe1980/synapseflow/registry"
	"github.com/hupe1980/synapseflow/tools"
	"github.com/hupe1980/synapseflow/vectorindex"
)

// DefaultAgentName is the agent the CLI registers when no manifest defines
// its own swarm.
const DefaultAgentName = "synapseflow"

// runtime bundles everything built from a Config.
type runtime struct {
	cfg    *config.Config
	logger logging.Logger
	swarm  *synapseflow.Swarm
	model  model.Model
	close  func()
}

// loadConfig resolves the effective configuration from the persistent
// --config flag.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// buildRuntime assembles logger, sink, index, model and a single-agent swarm
// from the configuration.
func buildRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	closers := []func(){}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	sink, closer, err := buildSink(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	mdl, err := buildModel(cfg)
	if err != nil {
		closeAll()
		return nil, err
	}

	index := buildIndex(ctx, cfg, mdl, logger)

	store := memory.NewStore(func(o *memory.Options) {
		o.Sink = sink
		o.Index = index
		o.Logger = logger
		if cfg.Memory.RecencyWeight != 0 {
			o.RecencyWeight = cfg.Memory.RecencyWeight
		}
	})

	reg := registry.New(func(o *registry.Options) { o.Logger = logger })
	if n, err := reg.Discover(tools.Source()); err != nil {
		logger.Warn("cli.discovery.failed", "error", err.Error())
	} else {
		logger.Info("cli.discovery.done", "capabilities", n)
	}

	a := agent.New(DefaultAgentName, func(o *agent.Options) {
		o.Registry = reg
		o.Memory = store
		o.Logger = logger
	})

	swarm := synapseflow.New(func(o *synapseflow.Options) { o.Logger = logger })
	swarm.Register(a)

	return &runtime{cfg: cfg, logger: logger, swarm: swarm, model: mdl, close: closeAll}, nil
}

func buildSink(cfg *config.Config) (core.Sink, func(), error) {
	switch cfg.Memory.Sink {
	case "", "none":
		return nil, nil, nil
	case "file":
		return memory.NewFileSink(cfg.Memory.Path), nil, nil
	case "bolt":
		sink, err := memory.NewBoltSink(cfg.Memory.Path)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() { _ = sink.Close() }, nil
	case "redis":
		opt, err := redis.ParseURL(cfg.Memory.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opt)
		return memory.NewRedisSink(rdb, cfg.Memory.RedisKey), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown memory sink %q", cfg.Memory.Sink)
	}
}

func buildModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "", "mock":
		return model.NewMockModel("mock"), nil
	case "openai":
		var clientOpts []option.RequestOption
		if cfg.Model.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(cfg.Model.APIKey))
		}
		client := openaiapi.NewClient(clientOpts...)
		return openai.NewModelFromClient(&client, func(o *openai.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
			if cfg.Model.Temperature != 0 {
				o.Temperature = cfg.Model.Temperature
			}
			if cfg.Model.MaxTokens != 0 {
				o.MaxCompletionTokens = int64(cfg.Model.MaxTokens)
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = cfg.Model.APIKey
			if cfg.Model.Name != "" {
				o.Model = anthropicapi.Model(cfg.Model.Name)
			}
			if cfg.Model.Temperature != 0 {
				o.Temperature = cfg.Model.Temperature
			}
			if cfg.Model.MaxTokens != 0 {
				o.MaxTokens = int64(cfg.Model.MaxTokens)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}

func buildIndex(ctx context.Context, cfg *config.Config, mdl model.Model, logger logging.Logger) core.VectorIndex {
	if !cfg.Index.Enabled {
		return nil
	}

	qdrant := vectorindex.NewQdrant(func(o *vectorindex.QdrantOptions) {
		o.URL = cfg.Index.URL
		o.APIKey = cfg.Index.APIKey
		if cfg.Index.Collection != "" {
			o.Collection = cfg.Index.Collection
		}
		if cfg.Index.VectorSize > 0 {
			o.VectorSize = cfg.Index.VectorSize
		}
	})

	if err := qdrant.EnsureCollection(ctx); err != nil {
		logger.Warn("cli.index.bootstrap_failed", "error", err.Error())
	}

	var index core.VectorIndex = qdrant
	if cfg.Index.UseEmbeddings {
		if embedder, ok := mdl.(model.Embedder); ok {
			index = vectorindex.NewEmbedded(qdrant, embedder, func(o *vectorindex.EmbeddedOptions) {
				o.Logger = logger
			})
		} else {
			logger.Warn("cli.index.no_embedder", "provider", mdl.Info().Provider)
		}
	}
	return index
}
