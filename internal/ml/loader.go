package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config selects the artifact source. When Endpoint is set the artifact is
// fetched from object storage, otherwise it is read from Path.
type Config struct {
	Path string `mapstructure:"path"`

	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accesskeyid"`
	SecretAccessKey string `mapstructure:"secretaccesskey"`
	Bucket          string `mapstructure:"bucket"`
	Object          string `mapstructure:"object"`
	UseSSL          bool   `mapstructure:"usessl"`
}

// Loader resolves and caches the model once per process. All requests
// share the same read-only handle; concurrent first calls are serialized
// by sync.Once, and a load failure is cached the same way so the process
// does not hammer a broken source.
type Loader struct {
	cfg   Config
	once  sync.Once
	model *Model
	err   error
}

// NewLoader creates a lazy model loader. Nothing is read until Get.
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg}
}

// Get returns the cached model handle, loading it on first use.
func (l *Loader) Get(ctx context.Context) (*Model, error) {
	l.once.Do(func() {
		l.model, l.err = l.load(ctx)
	})
	return l.model, l.err
}

func (l *Loader) load(ctx context.Context) (*Model, error) {
	var (
		data []byte
		err  error
	)
	if l.cfg.Endpoint != "" {
		data, err = l.fetchObject(ctx)
	} else {
		data, err = os.ReadFile(l.cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return newModel(art)
}

func (l *Loader) fetchObject(ctx context.Context) ([]byte, error) {
	mc, err := minio.New(l.cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(l.cfg.AccessKeyID, l.cfg.SecretAccessKey, ""),
		Secure: l.cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	obj, err := mc.GetObject(ctx, l.cfg.Bucket, l.cfg.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", l.cfg.Bucket, l.cfg.Object, err)
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
