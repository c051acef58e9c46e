package libspec

import (
	"context"

	"github.com/viant/afs"
)

// Load reads and parses a single module-spec JSON document from URL
// (local path, or any scheme github.com/viant/afs supports), mirroring
// analyzer/package.go's analyzePackage use of
// afs.Service.DownloadWithURL to pull file bytes for analysis.
func Load(ctx context.Context, fs afs.Service, URL string) (*ModuleSpec, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadAll reads and parses every URL in order, returning one ModuleSpec
// per URL.
func LoadAll(ctx context.Context, fs afs.Service, URLs ...string) ([]*ModuleSpec, error) {
	specs := make([]*ModuleSpec, 0, len(URLs))
	for _, u := range URLs {
		m, err := Load(ctx, fs, u)
		if err != nil {
			return nil, err
		}
		specs = append(specs, m)
	}
	return specs, nil
}
