package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbitrig/ecs"
)

// EntityInfo is one row of the entity table.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// ListEntities returns every live entity in archetype creation order. Archetypes
// containing any of the hidden types are left out.
func ListEntities(storage *ecs.Storage, hidden ...reflect.Type) []EntityInfo {
	var out []EntityInfo
	for _, archetype := range storage.Archetypes() {
		types := archetype.Types()
		if slices.ContainsFunc(types, func(t reflect.Type) bool { return slices.Contains(hidden, t) }) {
			continue
		}
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.Name()
		}
		for id := range archetype.Iter() {
			out = append(out, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return out
}

// Field is one editable leaf of a component: a number or a bool, reached through
// nested structs and arrays. Value is addressable and writes through to storage.
type Field struct {
	Path  string
	Value reflect.Value
}

// ComponentFields flattens the component behind ptr into its editable leaves.
// Vectors come out as "Translation[0]", quaternions as "Rotation.V[2]". A component
// that is itself a number or bool yields one field named after its type.
func ComponentFields(ptr any) []Field {
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return nil
	}
	val = val.Elem()
	var out []Field
	if val.Kind() == reflect.Struct {
		collectFields("", val, &out)
	} else {
		collectFields(val.Type().Name(), val, &out)
	}
	return out
}

func collectFields(path string, val reflect.Value, out *[]Field) {
	switch val.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*out = append(*out, Field{Path: path, Value: val})
	case reflect.Array:
		for i := 0; i < val.Len(); i++ {
			collectFields(fmt.Sprintf("%s[%d]", path, i), val.Index(i), out)
		}
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			sf := val.Type().Field(i)
			if !sf.IsExported() {
				continue
			}
			name := sf.Name
			if path != "" {
				name = path + "." + sf.Name
			}
			collectFields(name, val.Field(i), out)
		}
	}
}

// EntityInspector lists entities and edits the numbers and flags of the selected one.
type EntityInspector struct {
	Title   string
	Storage *ecs.Storage
	// Hidden archetypes are left out of the table; debug windows hide themselves.
	Hidden []reflect.Type

	selected ecs.EntityId
}

func NewEntityInspector(storage *ecs.Storage) *EntityInspector {
	return &EntityInspector{
		Title:   "Entities",
		Storage: storage,
		Hidden:  []reflect.Type{reflect.TypeFor[ImguiItem]()},
	}
}

func (e *EntityInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 280), imgui.CondOnce)
	if imgui.BeginV(e.Title, nil, imgui.WindowFlagsNone) {
		e.renderTable()
		e.renderSelected()
	}
	imgui.End()
}

func (e *EntityInspector) renderTable() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Entity")
	imgui.TableSetupColumn("Archetype")
	imgui.TableSetupColumn("Components")
	imgui.TableHeadersRow()

	for _, entity := range ListEntities(e.Storage, e.Hidden...) {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), e.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			e.selected = entity.ID
		}
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))
		imgui.TableNextColumn()
		imgui.Text(strings.Join(entity.ComponentTypes, ", "))
	}
	imgui.EndTable()
}

func (e *EntityInspector) renderSelected() {
	if e.selected == 0 {
		imgui.Text("No entity selected")
		return
	}
	archetype := e.findArchetype(e.selected.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", e.selected))
		return
	}

	imgui.Separator()
	for _, compType := range archetype.Types() {
		component := e.Storage.GetComponent(e.selected, compType)
		if component == nil {
			imgui.Text(fmt.Sprintf("Entity %d no longer exists", e.selected))
			return
		}
		if imgui.TreeNodeStr(compType.Name()) {
			for _, field := range ComponentFields(component) {
				renderField(field, compType.Name())
			}
			imgui.TreePop()
		}
	}
}

func (e *EntityInspector) findArchetype(id uint32) *ecs.Archetype {
	for _, archetype := range e.Storage.Archetypes() {
		if archetype.ID() == id {
			return archetype
		}
	}
	return nil
}

func renderField(field Field, scope string) {
	label := fmt.Sprintf("%s##%s", field.Path, scope)
	val := field.Value

	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		if imgui.InputFloat(label, &v) {
			val.SetFloat(float64(v))
		}
	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(label, &v) {
			val.SetBool(v)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		if imgui.InputInt(label, &v) {
			val.SetInt(int64(v))
		}
	}
}

// SpawnEntityInspector adds an entity that draws the inspector every tick.
func SpawnEntityInspector(storage *ecs.Storage) *EntityInspector {
	inspector := NewEntityInspector(storage)
	storage.Spawn(ImguiItem{Render: inspector.Render})
	return inspector
}
