package arena

import (
	"math"
	"sort"
)

func updateElo(a *Contender, b *Contender, resultForA float64, k float64) {
	expA := 1.0 / (1.0 + math.Pow(10, (b.Elo-a.Elo)/400.0))
	expB := 1.0 / (1.0 + math.Pow(10, (a.Elo-b.Elo)/400.0))
	a.Elo += k * (resultForA - expA)
	b.Elo += k * ((1.0 - resultForA) - expB)
}

func sortContendersByElo(list []Contender) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Elo > list[j].Elo
	})
}
