package folio

import "sort"

// AllocationBucket is one slice of the allocation breakdown.
type AllocationBucket struct {
	Label string
	Value Money
	Share Percent
}

// Allocation is the breakdown of a snapshot's market value into labelled
// buckets whose shares sum to 100%.
type Allocation struct {
	Scope   Scope
	On      Date
	Total   Money
	Buckets []AllocationBucket
}

// AllocateBySymbol breaks a snapshot down per symbol. Positions worth less
// than minShare (a fraction, e.g. 0.02 for 2%) of the total are merged into a
// single "Other" bucket so the breakdown stays readable.
func AllocateBySymbol(snapshot *Snapshot, minShare float64) *Allocation {
	return allocate(snapshot, minShare, func(h HoldingSnapshot) string { return h.Symbol })
}

// AllocateBySector breaks a snapshot down per sector using the given
// symbol-to-sector mapping. Unmapped symbols land in "Unclassified".
func AllocateBySector(snapshot *Snapshot, sectors map[string]string, minShare float64) *Allocation {
	return allocate(snapshot, minShare, func(h HoldingSnapshot) string {
		if sector, ok := sectors[h.Symbol]; ok {
			return sector
		}
		return "Unclassified"
	})
}

func allocate(snapshot *Snapshot, minShare float64, label func(HoldingSnapshot) string) *Allocation {
	a := &Allocation{Scope: snapshot.Scope, On: snapshot.On, Total: snapshot.TotalValue()}

	values := make(map[string]Money)
	var order []string
	for _, h := range snapshot.Holdings {
		key := label(h)
		if _, ok := values[key]; !ok {
			order = append(order, key)
		}
		values[key] = values[key].Add(h.MarketValue)
	}

	total := a.Total.AsFloat()
	other := USD(0)
	for _, key := range order {
		value := values[key]
		if total > 0 && value.AsFloat()/total < minShare {
			other = other.Add(value)
			continue
		}
		a.Buckets = append(a.Buckets, AllocationBucket{Label: key, Value: value})
	}
	sort.SliceStable(a.Buckets, func(i, j int) bool {
		return a.Buckets[i].Value.GreaterThan(a.Buckets[j].Value)
	})
	if !other.IsZero() {
		a.Buckets = append(a.Buckets, AllocationBucket{Label: "Other", Value: other})
	}
	for i := range a.Buckets {
		if total > 0 {
			a.Buckets[i].Share = Percent(a.Buckets[i].Value.AsFloat() / total * 100)
		}
	}
	return a
}
