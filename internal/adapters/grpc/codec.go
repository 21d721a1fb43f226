package grpc

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// EncodeState converts a host state into its wire form. Only non-empty
// cargo slots are sent.
func EncodeState(state simulation.HostState) (*structpb.Struct, error) {
	cargo := []interface{}{}
	for ci, modules := range state.Snapshot.Cargo {
		for mi, slot := range modules {
			if slot.IsEmpty() {
				continue
			}
			cargo = append(cargo, map[string]interface{}{
				"compartment": ci,
				"module":      mi,
				"resource":    slot.Resource.Identifier,
				"amount":      slot.Amount,
			})
		}
	}

	groups := []interface{}{}
	for _, group := range state.Snapshot.Groups {
		statuses := make([]interface{}, len(group.Statuses))
		for i, status := range group.Statuses {
			statuses[i] = status.String()
		}
		groups = append(groups, map[string]interface{}{
			"group":    group.GroupIndex,
			"active":   group.Active,
			"statuses": statuses,
		})
	}

	fields := map[string]interface{}{
		"spacecraft":   state.Spacecraft,
		"tick":         state.Tick,
		"time":         state.Time.UTC().Format(time.RFC3339Nano),
		"compartments": len(state.Snapshot.Cargo),
		"cargo":        cargo,
		"groups":       groups,
	}
	if rig := state.Snapshot.MiningRig; rig != nil {
		fields["mining_rig"] = map[string]interface{}{
			"active": rig.Active,
			"status": rig.Status.String(),
			"rate":   rig.Rate,
		}
	}

	return structpb.NewStruct(fields)
}

// DecodeState converts the wire form back, resolving cargo resources in the catalog
func DecodeState(in *structpb.Struct, cat *catalog.Catalog) (simulation.HostState, error) {
	fields := in.GetFields()
	state := simulation.HostState{
		Spacecraft: fields["spacecraft"].GetStringValue(),
		Tick:       int(fields["tick"].GetNumberValue()),
	}
	if raw := fields["time"].GetStringValue(); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return state, fmt.Errorf("invalid snapshot time: %w", err)
		}
		state.Time = at
	}

	compartments := int(fields["compartments"].GetNumberValue())
	state.Snapshot.Cargo = make([][spacecraft.MaxModuleCount]spacecraft.Cargo, compartments)
	for _, value := range fields["cargo"].GetListValue().GetValues() {
		slot := value.GetStructValue().GetFields()
		ci := int(slot["compartment"].GetNumberValue())
		mi := int(slot["module"].GetNumberValue())
		if ci < 0 || ci >= compartments || mi < 0 || mi >= spacecraft.MaxModuleCount {
			return state, fmt.Errorf("cargo slot %d/%d out of range", ci, mi)
		}
		resource, err := cat.Resource(slot["resource"].GetStringValue())
		if err != nil {
			return state, err
		}
		state.Snapshot.Cargo[ci][mi] = spacecraft.Cargo{Resource: resource, Amount: slot["amount"].GetNumberValue()}
	}

	for _, value := range fields["groups"].GetListValue().GetValues() {
		group := value.GetStructValue().GetFields()
		snapshot := processing.GroupSnapshot{
			GroupIndex: int(group["group"].GetNumberValue()),
			Active:     group["active"].GetBoolValue(),
		}
		for _, raw := range group["statuses"].GetListValue().GetValues() {
			status, err := processing.ParseStatus(raw.GetStringValue())
			if err != nil {
				return state, err
			}
			snapshot.Statuses = append(snapshot.Statuses, status)
		}
		state.Snapshot.Groups = append(state.Snapshot.Groups, snapshot)
	}

	if rigValue, ok := fields["mining_rig"]; ok {
		rig := rigValue.GetStructValue().GetFields()
		status, err := processing.ParseStatus(rig["status"].GetStringValue())
		if err != nil {
			return state, err
		}
		state.Snapshot.MiningRig = &processing.MiningRigSnapshot{
			Active: rig["active"].GetBoolValue(),
			Status: status,
			Rate:   rig["rate"].GetNumberValue(),
		}
	}

	return state, nil
}
