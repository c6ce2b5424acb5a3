package fit

import (
	"github.com/evefit/fitcalc/internal/metrics"
	"github.com/evefit/fitcalc/pkg/sde"
)

// Affector is a live (carrier, modifier) pair currently contributing to
// some target's attribute.
type Affector struct {
	Carrier  *Holder
	Modifier sde.Modifier
}

// affectorRegistry indexes live affectors for one fit and resolves, on
// demand, which of them target a given holder. Rather than maintaining a
// shape-keyed index, this resolves membership by linear scan over the
// (typically small) live set: a fit rarely carries more than a few dozen
// affectors, so the index maintenance cost isn't worth paying for.
type affectorRegistry struct {
	fit       *Fit
	affectors []Affector
}

func newAffectorRegistry(f *Fit) *affectorRegistry {
	return &affectorRegistry{fit: f}
}

// register records carrier/modifier as live. Called by LinkTracker when a
// modifier's required state is entered.
func (r *affectorRegistry) register(carrier *Holder, mod sde.Modifier) {
	r.affectors = append(r.affectors, Affector{Carrier: carrier, Modifier: mod})
	metrics.AffectorsRegistered.Inc()
}

// unregister drops the first matching live entry. Called when a modifier's
// required state is exited.
func (r *affectorRegistry) unregister(carrier *Holder, mod sde.Modifier) {
	for i, a := range r.affectors {
		if a.Carrier == carrier && a.Modifier == mod {
			r.affectors = append(r.affectors[:i], r.affectors[i+1:]...)
			metrics.AffectorsRegistered.Dec()
			return
		}
	}
}

// unregisterAll drops every live affector carried by holder, used when it
// leaves the fit.
func (r *affectorRegistry) unregisterAll(carrier *Holder) {
	kept := r.affectors[:0]
	for _, a := range r.affectors {
		if a.Carrier == carrier {
			metrics.AffectorsRegistered.Dec()
			continue
		}
		kept = append(kept, a)
	}
	r.affectors = kept
}

// affecting returns every live affector whose domain/filter resolves to
// include target, in registration order (deterministic enumeration).
func (r *affectorRegistry) affecting(target *Holder) []Affector {
	var out []Affector
	for _, a := range r.affectors {
		if a.Modifier.Context == sde.ContextGang {
			continue // no gang membership modeled; always empty
		}
		if r.resolves(a.Carrier, a.Modifier, target) {
			out = append(out, a)
		}
	}
	return out
}

// affected returns every holder a (carrier, modifier) pair could possibly
// reach, used by LinkTracker to invalidate on activation/deactivation. It
// is the inverse of resolves, evaluated against the fit's current member
// set rather than a single target.
func (r *affectorRegistry) affected(carrier *Holder, mod sde.Modifier) []*Holder {
	var out []*Holder
	for _, h := range r.fit.allHolders() {
		if r.resolves(carrier, mod, h) {
			out = append(out, h)
		}
	}
	return out
}

// resolves reports whether mod, carried by carrier, targets holder h.
func (r *affectorRegistry) resolves(carrier *Holder, mod sde.Modifier, h *Holder) bool {
	if mod.Domain == sde.DomainOther {
		r.fit.warnOnce(carrier, "modifier domain 'other' is always unresolvable",
			"carrier_type", carrier.typeID)
		return false
	}

	switch mod.FilterType {
	case sde.FilterNone:
		root, ok := r.domainRoot(carrier, mod.Domain)
		return ok && root == h
	case sde.FilterAll:
		pool := r.domainPool(carrier, mod.Domain)
		return containsHolder(pool, h)
	case sde.FilterGroup:
		pool := r.domainPool(carrier, mod.Domain)
		return containsHolder(pool, h) && h.GroupID() == mod.FilterValue
	case sde.FilterSkill:
		pool := r.domainPool(carrier, mod.Domain)
		return containsHolder(pool, h) && h.Type().RequiresSkill(mod.FilterValue)
	case sde.FilterSkillSelf:
		pool := r.domainPool(carrier, mod.Domain)
		return containsHolder(pool, h) && h.Type().RequiresSkill(carrier.typeID)
	default:
		r.fit.warnOnce(carrier, "modifier has unknown filter_type",
			"carrier_type", carrier.typeID, "filter_type", int(mod.FilterType))
		return false
	}
}

// domainRoot resolves a filter=none modifier's single target holder.
func (r *affectorRegistry) domainRoot(carrier *Holder, domain sde.Domain) (*Holder, bool) {
	switch domain {
	case sde.DomainSelf:
		return carrier, true
	case sde.DomainCharacter:
		if r.fit.character == nil {
			return nil, false
		}
		return r.fit.character, true
	case sde.DomainShip:
		if r.fit.ship == nil {
			return nil, false
		}
		return r.fit.ship, true
	case sde.DomainTarget:
		if r.fit.projectedTarget == nil {
			return nil, false
		}
		return r.fit.projectedTarget, true
	default:
		r.fit.warnOnce(carrier, "modifier has unresolvable domain",
			"carrier_type", carrier.typeID, "domain", int(domain))
		return nil, false
	}
}

// domainPool resolves the set of holders "located under" domain, for
// filter=all/group/skill/skill_self.
func (r *affectorRegistry) domainPool(carrier *Holder, domain sde.Domain) []*Holder {
	switch domain {
	case sde.DomainSelf:
		return []*Holder{carrier}
	case sde.DomainCharacter:
		return r.fit.characterItems
	case sde.DomainShip:
		return r.fit.shipItems
	case sde.DomainTarget:
		if r.fit.projectedTarget == nil {
			return nil
		}
		return []*Holder{r.fit.projectedTarget}
	default:
		r.fit.warnOnce(carrier, "modifier has unresolvable domain",
			"carrier_type", carrier.typeID, "domain", int(domain))
		return nil
	}
}

func containsHolder(pool []*Holder, h *Holder) bool {
	for _, p := range pool {
		if p == h {
			return true
		}
	}
	return false
}
