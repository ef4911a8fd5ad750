package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/client/state"
	"p9e.in/assettrack/pkg/apperr"
)

type inspStage int

const (
	stageRegion inspStage = iota
	stageSite
	stageAsset
	stageForm
	stageSignature
	stageSaved
)

type (
	regionsMsg struct {
		regions []services.Region
		err     error
	}
	sitesMsg struct {
		regionID string
		sites    []services.Site
		err      error
	}
	assetsMsg struct {
		siteID string
		assets []services.Asset
		err    error
	}
	savedMsg struct {
		rec *services.Inspection
		err error
	}
	reportMsg struct {
		path string
		err  error
	}
)

// numberField is one numeric reading of the form.
type numberField struct {
	label string
	unit  string
	ptr   func(d *state.Draft) **float64
}

var numberFields = []numberField{
	{"Horas del motor", "h", func(d *state.Draft) **float64 { return &d.HorasMotor }},
	{"Presión de aceite", "bar", func(d *state.Draft) **float64 { return &d.PresionAceite }},
	{"Temperatura bloque", "°C", func(d *state.Draft) **float64 { return &d.TemperaturaBloque }},
	{"Nivel combustible", "%", func(d *state.Draft) **float64 { return &d.NivelCombustible }},
	{"Tensión", "V", func(d *state.Draft) **float64 { return &d.Tension }},
	{"Frecuencia", "Hz", func(d *state.Draft) **float64 { return &d.Frecuencia }},
	{"Corriente fase R", "A", func(d *state.Draft) **float64 { return &d.CorrienteFaseR }},
	{"Corriente fase S", "A", func(d *state.Draft) **float64 { return &d.CorrienteFaseS }},
	{"Corriente fase T", "A", func(d *state.Draft) **float64 { return &d.CorrienteFaseT }},
}

var checkCycle = []services.CheckStatus{services.CheckOK, services.CheckDefective, services.CheckReplaced}

// Form rows: the numeric inputs, then the checklist, then the free text
// fields and the signature.
var (
	rowFirstCheck = len(numberFields)
	rowParts      = rowFirstCheck + len(services.CheckFields)
	rowNotes      = rowParts + 1
	rowSignature  = rowNotes + 1
	formRows      = rowSignature + 1
)

// inspectionModel drives the capture workflow on top of state.InspectionStore.
type inspectionModel struct {
	stage   inspStage
	cursor  int
	loading bool

	row     int
	numbers []textinput.Model
	parts   textinput.Model
	notes   textarea.Model
	pad     SignaturePad

	downloading bool
}

func newInspectionModel() inspectionModel {
	m := inspectionModel{
		numbers: make([]textinput.Model, len(numberFields)),
		parts:   textinput.New(),
		notes:   textarea.New(),
		pad:     NewSignaturePad(),
	}
	for i := range m.numbers {
		ti := textinput.New()
		ti.CharLimit = 12
		ti.Width = 12
		m.numbers[i] = ti
	}
	m.parts.Placeholder = "Recambios separados por comas"
	m.parts.CharLimit = 256
	m.notes.Placeholder = "Observaciones"
	m.notes.SetHeight(3)
	m.notes.SetWidth(60)
	return m
}

// enter resumes the workflow at the store's current phase.
func (m *inspectionModel) enter(a *App) tea.Cmd {
	store := a.deps.Inspections
	m.cursor = 0
	if store.LastSaved != nil {
		m.stage = stageSaved
		return nil
	}
	switch store.Phase() {
	case state.AssetSelected:
		m.stage = stageForm
		return m.loadForm(a)
	case state.SiteSelected:
		m.stage = stageAsset
		return m.loadAssets(a)
	case state.RegionSelected:
		m.stage = stageSite
		return m.loadSites(a)
	}
	m.stage = stageRegion
	return m.loadRegions(a)
}

func (m *inspectionModel) loadRegions(a *App) tea.Cmd {
	m.loading = true
	loader, ctx := a.deps.Assets, a.ctx
	return func() tea.Msg {
		regions, err := loader.Regions(ctx)
		return regionsMsg{regions: regions, err: err}
	}
}

func (m *inspectionModel) loadSites(a *App) tea.Cmd {
	m.loading = true
	loader, ctx, id := a.deps.Assets, a.ctx, a.deps.Inspections.RegionID
	return func() tea.Msg {
		sites, err := loader.SitesByRegion(ctx, id)
		return sitesMsg{regionID: id, sites: sites, err: err}
	}
}

func (m *inspectionModel) loadAssets(a *App) tea.Cmd {
	m.loading = true
	loader, ctx, id := a.deps.Assets, a.ctx, a.deps.Inspections.SiteID
	return func() tea.Msg {
		assets, err := loader.AssetsBySite(ctx, id)
		return assetsMsg{siteID: id, assets: assets, err: err}
	}
}

// loadForm copies the draft into the inputs.
func (m *inspectionModel) loadForm(a *App) tea.Cmd {
	d := a.deps.Inspections.Draft
	for i, f := range numberFields {
		v := *f.ptr(&d)
		if v == nil {
			m.numbers[i].SetValue("")
		} else {
			m.numbers[i].SetValue(strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	m.parts.SetValue(strings.Join(d.RecambiosRealizados, ", "))
	m.notes.SetValue(deref(d.Observaciones))
	m.pad = NewSignaturePad()
	m.row = 0
	return m.focusRow()
}

func (m *inspectionModel) update(a *App, msg tea.Msg) tea.Cmd {
	store := a.deps.Inspections
	switch msg := msg.(type) {
	case regionsMsg:
		m.loading = false
		if msg.err != nil {
			return a.setStatus("load regions", msg.err)
		}
		store.Regions = msg.regions
		return nil

	case sitesMsg:
		m.loading = false
		if msg.err != nil {
			return a.setStatus("load sites", msg.err)
		}
		store.SetSites(msg.regionID, msg.sites)
		return nil

	case assetsMsg:
		m.loading = false
		if msg.err != nil {
			return a.setStatus("load assets", msg.err)
		}
		store.SetAssets(msg.siteID, msg.assets)
		return nil

	case savedMsg:
		if err := store.Saved(msg.rec, msg.err); err != nil {
			return a.setStatus("save inspection", err)
		}
		m.stage = stageSaved
		a.setStatus("Inspección guardada: "+deref(msg.rec.NumeroInspeccion), nil)
		return nil

	case reportMsg:
		m.downloading = false
		if msg.err != nil {
			return a.setStatus("download report", msg.err)
		}
		a.setStatus("Informe guardado en "+msg.path, nil)
		return nil

	case tea.KeyMsg:
		switch m.stage {
		case stageRegion, stageSite, stageAsset:
			return m.pickKey(a, msg)
		case stageForm:
			return m.formKey(a, msg)
		case stageSignature:
			return m.signatureKey(a, msg)
		case stageSaved:
			return m.savedKey(a, msg)
		}
	}

	if m.stage == stageForm {
		return m.updateFocused(msg)
	}
	return nil
}

func (m *inspectionModel) options(a *App) []string {
	store := a.deps.Inspections
	var out []string
	switch m.stage {
	case stageRegion:
		for _, r := range store.Regions {
			out = append(out, r.Nombre)
		}
	case stageSite:
		for _, s := range store.Sites {
			label := fmt.Sprintf("%s (%s)", s.Nombre, s.Codigo)
			if s.Ciudad != nil {
				label += " · " + *s.Ciudad
			}
			out = append(out, label)
		}
	case stageAsset:
		for _, as := range store.Assets {
			label := as.Codigo + " · " + as.Tipo
			if as.MotorModelo != nil {
				label += " · " + *as.MotorModelo
			}
			if as.UltimaRevision != nil {
				label += " · última revisión " + as.UltimaRevision.Format("02/01/2006")
			}
			out = append(out, label)
		}
	}
	return out
}

func (m *inspectionModel) pickKey(a *App, msg tea.KeyMsg) tea.Cmd {
	store := a.deps.Inspections
	n := len(m.options(a))
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		if m.loading || n == 0 {
			return nil
		}
		i := m.cursor
		m.cursor = 0
		switch m.stage {
		case stageRegion:
			store.SelectRegion(store.Regions[i].ID)
			m.stage = stageSite
			return m.loadSites(a)
		case stageSite:
			store.SelectSite(store.Sites[i].ID)
			m.stage = stageAsset
			return m.loadAssets(a)
		case stageAsset:
			asset := store.Assets[i]
			store.SelectAsset(&asset)
			m.stage = stageForm
			return m.loadForm(a)
		}
	case "r":
		switch m.stage {
		case stageRegion:
			return m.loadRegions(a)
		case stageSite:
			return m.loadSites(a)
		case stageAsset:
			return m.loadAssets(a)
		}
	case "esc":
		m.cursor = 0
		switch m.stage {
		case stageRegion:
			return navigate(RouteSelector)
		case stageSite:
			store.SelectRegion("")
			m.stage = stageRegion
			if len(store.Regions) == 0 {
				return m.loadRegions(a)
			}
		case stageAsset:
			store.SelectSite("")
			m.stage = stageSite
			return m.loadSites(a)
		}
	}
	return nil
}

func (m *inspectionModel) formKey(a *App, msg tea.KeyMsg) tea.Cmd {
	store := a.deps.Inspections
	key := msg.String()
	switch key {
	case "tab", "shift+tab":
		return m.move(a, key == "tab")
	case "up", "down":
		if m.row != rowNotes {
			return m.move(a, key == "down")
		}
	case "ctrl+s":
		return m.save(a)
	case "esc":
		m.commit(a)
		store.SelectAsset(nil)
		m.stage = stageAsset
		m.cursor = 0
		return nil
	}

	switch {
	case m.row >= rowFirstCheck && m.row < rowParts:
		field := services.CheckFields[m.row-rowFirstCheck]
		switch key {
		case " ", "right", "l":
			m.cycleCheck(a, field.Key, 1)
		case "left", "h":
			m.cycleCheck(a, field.Key, -1)
		}
		return nil
	case m.row == rowSignature:
		if key == "enter" || key == " " {
			m.stage = stageSignature
		}
		return nil
	case key == "enter" && m.row != rowNotes:
		return m.move(a, true)
	}
	return m.updateFocused(msg)
}

func (m *inspectionModel) cycleCheck(a *App, key string, step int) {
	d := a.deps.Inspections.Draft.Checklist
	cur := *d.Field(key)
	i := 0
	for j, st := range checkCycle {
		if st == cur {
			i = j
		}
	}
	next := checkCycle[(i+step+len(checkCycle))%len(checkCycle)]
	if err := a.deps.Inspections.UpdateCheckStatus(key, next); err != nil {
		a.setStatus("update check", err)
	}
}

func (m *inspectionModel) move(a *App, forward bool) tea.Cmd {
	m.commit(a)
	if forward {
		m.row = (m.row + 1) % formRows
	} else {
		m.row = (m.row - 1 + formRows) % formRows
	}
	return m.focusRow()
}

func (m *inspectionModel) focusRow() tea.Cmd {
	for i := range m.numbers {
		m.numbers[i].Blur()
	}
	m.parts.Blur()
	m.notes.Blur()
	switch {
	case m.row < rowFirstCheck:
		return m.numbers[m.row].Focus()
	case m.row == rowParts:
		return m.parts.Focus()
	case m.row == rowNotes:
		return m.notes.Focus()
	}
	return nil
}

func (m *inspectionModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.row < rowFirstCheck:
		m.numbers[m.row], cmd = m.numbers[m.row].Update(msg)
	case m.row == rowParts:
		m.parts, cmd = m.parts.Update(msg)
	case m.row == rowNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return cmd
}

// commit writes the text inputs back into the draft. An emptied input
// unsets the reading; an unparsable one is reported and left as it was.
func (m *inspectionModel) commit(a *App) {
	store := a.deps.Inspections
	for i, f := range numberFields {
		raw := strings.TrimSpace(strings.ReplaceAll(m.numbers[i].Value(), ",", "."))
		if raw == "" {
			*f.ptr(&store.Draft) = nil
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			a.setStatus("parse reading", apperr.Invalidf("inspection.Form", "%s: valor no numérico", f.label))
			continue
		}
		var patch state.Draft
		*f.ptr(&patch) = &v
		store.UpdateFormData(patch)
	}

	parts := []string{}
	for _, p := range strings.Split(m.parts.Value(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	store.UpdateFormData(state.Draft{RecambiosRealizados: parts})
	if notes := strings.TrimSpace(m.notes.Value()); notes != "" {
		store.UpdateFormData(state.Draft{Observaciones: &notes})
	} else {
		store.Draft.Observaciones = nil
	}
}

func (m *inspectionModel) signatureKey(a *App, msg tea.KeyMsg) tea.Cmd {
	store := a.deps.Inspections
	switch msg.String() {
	case "enter":
		m.stage = stageForm
		if m.pad.Empty() {
			store.Draft.FirmaTecnico = nil
			return nil
		}
		url, err := m.pad.DataURL()
		if err != nil {
			a.setStatus("encode signature", err)
			return nil
		}
		store.UpdateFormData(state.Draft{FirmaTecnico: &url})
		return nil
	case "esc":
		m.stage = stageForm
		return nil
	}
	m.pad = m.pad.Update(msg)
	return nil
}

func (m *inspectionModel) save(a *App) tea.Cmd {
	store := a.deps.Inspections
	if store.Saving {
		return nil
	}
	m.commit(a)
	in, err := store.Prepare(a.deps.Auth.User)
	if err != nil {
		return a.setStatus("save inspection", err)
	}
	store.Saving = true
	a.setStatus("Guardando...", nil)
	ctx := a.ctx
	return func() tea.Msg {
		rec, err := store.Submit(ctx, in)
		return savedMsg{rec: rec, err: err}
	}
}

func (m *inspectionModel) savedKey(a *App, msg tea.KeyMsg) tea.Cmd {
	store := a.deps.Inspections
	switch msg.String() {
	case "p":
		if m.downloading || store.LastSaved == nil || a.deps.Reports == nil {
			return nil
		}
		m.downloading = true
		return downloadReport(a, store.LastSaved.ID)
	case "n":
		store.ResetForm()
		m.stage = stageRegion
		m.cursor = 0
		if len(store.Regions) == 0 {
			return m.loadRegions(a)
		}
	case "esc":
		return navigate(RouteSelector)
	}
	return nil
}

func downloadReport(a *App, id string) tea.Cmd {
	fetch, ctx, dir := a.deps.Reports, a.ctx, a.deps.ReportDir
	return func() tea.Msg {
		data, name, err := fetch.Report(ctx, id)
		if err != nil {
			return reportMsg{err: err}
		}
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return reportMsg{err: err}
		}
		return reportMsg{path: path}
	}
}

func (m *inspectionModel) view(a *App) string {
	switch m.stage {
	case stageForm:
		return m.formView(a)
	case stageSignature:
		return m.signatureView(a)
	case stageSaved:
		return m.savedView(a)
	}
	return m.pickView(a)
}

func (m *inspectionModel) pickView(a *App) string {
	s := a.styles
	titles := map[inspStage]string{
		stageRegion: "Comunidad autónoma",
		stageSite:   "Aeropuerto",
		stageAsset:  "Grupo electrógeno",
	}
	var b strings.Builder
	b.WriteString(s.Title.Render(titles[m.stage]))
	b.WriteString("\n")
	if crumbs := m.breadcrumb(a); crumbs != "" {
		b.WriteString(s.Subtitle.Render(crumbs) + "\n\n")
	}
	opts := m.options(a)
	switch {
	case m.loading:
		b.WriteString(s.Muted.Render("Cargando..."))
	case len(opts) == 0:
		b.WriteString(s.Muted.Render("Sin resultados"))
	default:
		for i, o := range opts {
			if i == m.cursor {
				b.WriteString(s.Selected.Render("▸ "+o) + "\n")
			} else {
				b.WriteString("  " + o + "\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("enter: elegir · r: recargar · esc: atrás"))
	return b.String()
}

func (m *inspectionModel) breadcrumb(a *App) string {
	store := a.deps.Inspections
	var parts []string
	for _, r := range store.Regions {
		if r.ID == store.RegionID {
			parts = append(parts, r.Nombre)
		}
	}
	for _, st := range store.Sites {
		if st.ID == store.SiteID {
			parts = append(parts, st.Nombre)
		}
	}
	if store.SelectedAsset != nil {
		parts = append(parts, store.SelectedAsset.Codigo)
	}
	return strings.Join(parts, " › ")
}

func (m *inspectionModel) formView(a *App) string {
	s := a.styles
	store := a.deps.Inspections
	cursor := func(row int) string {
		if row == m.row {
			return s.Selected.Render("▸ ")
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Revisión " + store.SelectedAsset.Codigo))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(m.breadcrumb(a)) + "\n\n")

	b.WriteString(s.Bold.Render("Datos de prueba y cuadro eléctrico") + "\n")
	for i, f := range numberFields {
		fmt.Fprintf(&b, "%s%-20s %s %s\n", cursor(i), f.label, m.numbers[i].View(), s.Muted.Render(f.unit))
	}

	b.WriteString("\n" + s.Bold.Render("Inspección en el motor") + "\n")
	for i, f := range services.CheckFields {
		st := *store.Draft.Checklist.Field(f.Key)
		fmt.Fprintf(&b, "%s%-36s %s\n", cursor(rowFirstCheck+i), f.Label, m.checkBadge(s, st))
	}

	b.WriteString("\n" + cursor(rowParts) + m.parts.View() + "\n")
	b.WriteString(cursor(rowNotes) + "\n" + m.notes.View() + "\n")

	sig := s.Warning.Render("sin firmar")
	if store.Draft.FirmaTecnico != nil && *store.Draft.FirmaTecnico != "" {
		sig = s.Success.Render("firmado")
	}
	b.WriteString(cursor(rowSignature) + "Firma del técnico: " + sig + "\n\n")

	if store.Saving {
		b.WriteString(s.Muted.Render("Guardando..."))
	} else {
		b.WriteString(s.Muted.Render("tab: siguiente · espacio: cambiar estado · ctrl+s: guardar · esc: atrás"))
	}
	return b.String()
}

func (m *inspectionModel) checkBadge(s Styles, st services.CheckStatus) string {
	switch st {
	case services.CheckOK:
		return s.Success.Render(string(st))
	case services.CheckDefective:
		return s.Error.Render(string(st))
	case services.CheckReplaced:
		return s.Warning.Render(string(st))
	}
	return s.Muted.Render("-")
}

func (m *inspectionModel) signatureView(a *App) string {
	s := a.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Firma del técnico"))
	b.WriteString("\n")
	b.WriteString(m.pad.View(s))
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("flechas: mover · espacio: lápiz · x: borrar · enter: aceptar · esc: cancelar"))
	return b.String()
}

func (m *inspectionModel) savedView(a *App) string {
	s := a.styles
	rec := a.deps.Inspections.LastSaved
	var b strings.Builder
	b.WriteString(s.Title.Render("Inspección guardada"))
	b.WriteString("\n")
	if rec != nil {
		fmt.Fprintf(&b, "Número: %s\n", s.Bold.Render(deref(rec.NumeroInspeccion)))
		fmt.Fprintf(&b, "Fecha:  %s\n", rec.FechaInspeccion.Local().Format("02/01/2006 15:04"))
		fmt.Fprintf(&b, "Estado: %s\n", rec.Estado)
	}
	b.WriteString("\n")
	if m.downloading {
		b.WriteString(s.Muted.Render("Descargando informe..."))
	} else {
		b.WriteString(s.Muted.Render("p: descargar PDF · n: nueva inspección · esc: menú"))
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
