package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/explore/ecs"
)

// PerformanceStats shows frame times, registry bookkeeping and per-system
// timings.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame of dt seconds to the history.
func (ps *PerformanceStats) Record(dt float32) {
	ps.frameHistory[ps.frameIndex] = dt * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(r *ecs.Registry, timer *ecs.SystemTimer, dt float32) {
	ps.Record(dt)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := r.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d (highest id %d, %d free)", stats.EntityCount, stats.HighestID, stats.FreeIDs))
	imgui.Text(fmt.Sprintf("Pending: %d adds, %d kills", stats.PendingAdds, stats.PendingKills))
	imgui.Text(fmt.Sprintf("Tags: %d  Groups: %d", stats.TagCount, stats.GroupCount))
	imgui.Text(fmt.Sprintf("Components in use: %d", stats.ComponentsInUse))

	avg := ps.AverageFrameTime()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg

	if imgui.TreeNodeStr("Systems") {
		timings := map[string]ecs.SystemStats{}
		if timer != nil {
			for _, s := range timer.GetStats().Systems {
				timings[s.Name] = s
			}
		}
		if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Signature")
			imgui.TableSetupColumn("Entities")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.Signature.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.EntityCount))
				t, ok := timings[sys.Name]
				imgui.TableNextColumn()
				if ok {
					imgui.Text(t.LastDuration.String())
				}
				imgui.TableNextColumn()
				if ok {
					imgui.Text(t.AvgDuration.String())
				}
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Component Pools") {
		if imgui.BeginTableV("PoolTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Capacity")
			imgui.TableSetupColumn("Attached")
			imgui.TableHeadersRow()

			for _, pool := range stats.Pools {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pool.Component)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Capacity))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Attached))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Groups") {
		names := make([]string, 0, len(stats.GroupBreakdown))
		for name := range stats.GroupBreakdown {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			imgui.BulletText(fmt.Sprintf("%s: %d", name, stats.GroupBreakdown[name]))
		}
		imgui.TreePop()
	}

	imgui.End()
}
