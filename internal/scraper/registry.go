package scraper

import (
	"net/url"
	"strings"

	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

// Supplier describes one scrapable source site. The host allow-list doubles
// as the trust boundary: probe endpoints refuse URLs outside it.
type Supplier struct {
	Name  string
	Hosts []string
}

const (
	SupplierProesi   = "proesi"
	SupplierLojaVale = "lojavale"
)

var defaultSuppliers = []Supplier{
	{
		Name:  SupplierProesi,
		Hosts: []string{"www.proesi.com.br", "proesi.com.br"},
	},
	{
		Name:  SupplierLojaVale,
		Hosts: []string{"www.lojavale.com.br", "lojavale.com.br"},
	},
}

// Registry resolves product URLs to their supplier. New suppliers plug in
// here rather than into the matcher code.
type Registry struct {
	suppliers []Supplier
}

// NewRegistry builds a registry from explicit suppliers; nil means defaults.
func NewRegistry(suppliers []Supplier) *Registry {
	if len(suppliers) == 0 {
		suppliers = defaultSuppliers
	}
	return &Registry{suppliers: suppliers}
}

// Match resolves the supplier that owns rawURL, optionally restricted to a
// single supplier name (empty allows any).
func (r *Registry) Match(rawURL, onlySupplier string) (*Supplier, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url must be an absolute http(s) address")
	}

	host := strings.ToLower(parsed.Host)
	for i := range r.suppliers {
		supplier := &r.suppliers[i]
		if onlySupplier != "" && supplier.Name != onlySupplier {
			continue
		}
		for _, allowed := range supplier.Hosts {
			if host == allowed {
				return supplier, nil
			}
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeValidation, "url is not from an allowed supplier domain")
}
