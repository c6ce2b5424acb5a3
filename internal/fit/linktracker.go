package fit

import (
	"github.com/evefit/fitcalc/pkg/logger"
	"github.com/evefit/fitcalc/pkg/sde"
)

// linkTracker drives affector registration as holders join, leave, or cross
// an effect's activation threshold. States are monotonic (offline ⊆
// online ⊆ active ⊆ overload), so "which states are entered" reduces to a
// single threshold comparison rather than an explicit set.
type linkTracker struct {
	fit *Fit
	log *logger.Logger
}

func newLinkTracker(f *Fit) *linkTracker {
	return &linkTracker{fit: f, log: f.logger.Named("fit.linktracker")}
}

// join activates every effect live at holder's current state. Unlike
// transition, there is no "previous state" to diff against: a fresh
// holder enters every threshold its current state satisfies, including
// offline-gated passive/system effects.
func (lt *linkTracker) join(h *Holder) {
	for _, eff := range h.effects() {
		minState, recognized := eff.Category.MinState()
		if !recognized {
			lt.fit.warnOnce(h, "effect has unrecognized category",
				"effect_id", eff.ID, "category", int(eff.Category))
			continue
		}
		if h.state >= minState {
			lt.activate(h, eff)
		}
	}
}

// leave deactivates every effect currently live on h, symmetric to join.
func (lt *linkTracker) leave(h *Holder) {
	for _, eff := range h.effects() {
		minState, recognized := eff.Category.MinState()
		if !recognized {
			continue
		}
		if h.state >= minState {
			lt.deactivate(h, eff)
		}
	}
}

// transition diffs the effects whose activation threshold lies strictly
// between from and to (exclusive/inclusive per crossing direction) and
// registers or unregisters their modifiers accordingly.
func (lt *linkTracker) transition(h *Holder, from, to sde.State) {
	if from == to {
		return
	}
	for _, eff := range h.effects() {
		minState, recognized := eff.Category.MinState()
		if !recognized {
			lt.fit.warnOnce(h, "effect has unrecognized category",
				"effect_id", eff.ID, "category", int(eff.Category))
			continue
		}
		wasLive := from >= minState
		isLive := to >= minState
		if wasLive == isLive {
			continue
		}
		if isLive {
			lt.activate(h, eff)
		} else {
			lt.deactivate(h, eff)
		}
	}
}

// activate registers every modifier of eff and invalidates whoever it now
// affects, so the next read picks it up.
func (lt *linkTracker) activate(h *Holder, eff sde.Effect) {
	for _, mod := range eff.Modifiers {
		lt.fit.registry.register(h, mod)
	}
	lt.fit.invalidateAffected(h, eff)
	lt.log.Info("effect activated", "carrier_type", h.typeID, "effect_id", eff.ID)
}

// deactivate invalidates whoever eff currently affects (before it stops
// affecting them) and then unregisters its modifiers.
func (lt *linkTracker) deactivate(h *Holder, eff sde.Effect) {
	lt.fit.invalidateAffected(h, eff)
	for _, mod := range eff.Modifiers {
		lt.fit.registry.unregister(h, mod)
	}
	lt.log.Info("effect deactivated", "carrier_type", h.typeID, "effect_id", eff.ID)
}
