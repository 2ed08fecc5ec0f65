package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"i4.energy/across/smscmd/cmdparse"
	"i4.energy/across/smscmd/dispatch"
	"i4.energy/across/smscmd/settings"
)

// Command names are matched as substrings, so none of them may occur
// inside a line meant for another one ("Min2" would claim "tmin2 5").
const (
	paramMin    = "Min2"
	paramMax    = "Max2"
	paramLow    = "Tlow"
	paramHigh   = "Thigh"
	paramMode   = "mode"
	cmdStatus   = "status"
	zoneCount   = 4
	tempLowest  = -50
	tempHighest = 150
)

// newSettings defines the parameters of the controlled device with
// their power-on values
func newSettings() *settings.Store {
	store := settings.NewStore()
	store.DefineScalar(paramMin, 5)
	store.DefineScalar(paramMax, 95)
	store.DefineArray(paramLow, zoneCount)
	store.DefineArray(paramHigh, zoneCount)
	store.DefineScalar(paramMode, 0)
	return store
}

// newDispatcher returns the command table operating on store
func newDispatcher(logger *slog.Logger, store *settings.Store) *dispatch.Dispatcher {
	temp := cmdparse.Between(tempLowest, tempHighest)
	return dispatch.New(logger,
		dispatch.FloatSetting(store, paramMin, cmdparse.Between(0, 100)),
		dispatch.FloatSetting(store, paramMax, cmdparse.Between(0, 100)),
		dispatch.IndexedFloatSetting(store, paramLow, temp, 0, zoneCount-1),
		dispatch.IndexedFloatSetting(store, paramHigh, temp, 0, zoneCount-1),
		dispatch.IntSetting(store, paramMode, 0, 3),
		dispatch.Action(cmdStatus, func() string { return summary(store) }),
	)
}

// summary renders every parameter as "name=value", arrays joined by "/"
func summary(store *settings.Store) string {
	snap := store.Snapshot()
	parts := make([]string, 0, len(snap))
	for _, name := range store.Names() {
		switch v := snap[name].(type) {
		case float64:
			parts = append(parts, name+"="+formatValue(v))
		case []float64:
			values := make([]string, len(v))
			for i, e := range v {
				values[i] = formatValue(e)
			}
			parts = append(parts, name+"="+strings.Join(values, "/"))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	return strings.Join(parts, " ")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
