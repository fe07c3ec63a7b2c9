package launch

// ReconcileInput is an explicit snapshot of everything the reconciler may
// trust: the rows the user currently sees, the raw backend rows for the same
// title and category under any key scheme, and the configured platform list.
// Passing the screen state in as a value keeps Reconcile pure and the
// precedence rule testable without a UI harness.
type ReconcileInput struct {
	// Screen is the just-edited UI state per platform, nil when no screen is
	// involved (background recomputation, CLI reads).
	Screen map[string]Status
	// Backend is every stored row matching the title/category by current
	// project-id key or either legacy key.
	Backend []StatusRecord
	// Platforms is the studio's currently-configured platform list.
	// Configuration is authoritative over history: statuses for platforms
	// not listed are dropped regardless of what is stored.
	Platforms []string
}

// Reconcile produces one authoritative status per platform.
//
// If the screen shows any platform as launched, the screen is trusted
// exclusively: backend launched facts for platforms absent from the screen
// are not merged in, so a stale backend row cannot reintroduce a platform the
// user just turned off. Otherwise the backend rows are folded per platform,
// taking the highest-ranked status across duplicate keys. Platforms that
// resolve to none are omitted from the result.
func Reconcile(in ReconcileInput) map[string]Status {
	configured := make(map[string]bool, len(in.Platforms))
	for _, id := range in.Platforms {
		configured[id] = true
	}

	out := make(map[string]Status)

	if screenHasLaunched(in.Screen) {
		for platformID, status := range in.Screen {
			if !configured[platformID] || status == StatusNone || !status.Valid() {
				continue
			}
			out[platformID] = status
		}
		return out
	}

	for _, rec := range in.Backend {
		if !configured[rec.PlatformID] {
			continue
		}
		if current, ok := out[rec.PlatformID]; !ok || rec.Status.Rank() > current.Rank() {
			out[rec.PlatformID] = rec.Status
		}
	}
	for platformID, status := range out {
		if status == StatusNone {
			delete(out, platformID)
		}
	}
	return out
}

// LaunchedPlatforms filters a reconciled map down to the launched set,
// ordered by the configured platform list.
func LaunchedPlatforms(reconciled map[string]Status, platforms []string) []string {
	var out []string
	for _, id := range platforms {
		if reconciled[id] == StatusLaunched {
			out = append(out, id)
		}
	}
	return out
}

func screenHasLaunched(screen map[string]Status) bool {
	for _, status := range screen {
		if status == StatusLaunched {
			return true
		}
	}
	return false
}
