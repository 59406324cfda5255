// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"chisel/cvar"
)

var (
	GeomEpsilon   *cvar.Cvar
	GeomMaxPlanes *cvar.Cvar
	GeomWorkers   *cvar.Cvar
	HistorySize   *cvar.Cvar
	VMFStrict     *cvar.Cvar
)

func init() {
	GeomEpsilon = cvar.MustRegister("geom_epsilon", "0.001", cvar.ARCHIVE)
	GeomMaxPlanes = cvar.MustRegister("geom_max_planes", "64", cvar.ARCHIVE)
	GeomWorkers = cvar.MustRegister("geom_workers", "0", cvar.ARCHIVE) // 0: GOMAXPROCS
	HistorySize = cvar.MustRegister("history_size", "16", cvar.ARCHIVE)
	VMFStrict = cvar.MustRegister("vmf_strict", "0", cvar.ARCHIVE) // documents with broken solids fail to load
}
