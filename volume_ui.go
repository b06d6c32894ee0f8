package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/audiocontroller/audio"
)

const volumeStep = 0.1

type volumeUI struct {
	game   *Game
	labels map[audio.ChannelID]*widget.Text
}

// NewVolumeUI builds a panel in the top right corner with one row per
// channel: a volume label and buttons that queue volume changes.
func NewVolumeUI(g *Game) (*ebitenui.UI, *volumeUI) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(widget.NewText(widget.TextOpts.Text("Volume", &face, white)))

	v := &volumeUI{game: g, labels: make(map[audio.ChannelID]*widget.Text)}
	for _, id := range g.audio.Channels() {
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
		)
		label := widget.NewText(
			widget.TextOpts.Text(v.label(id), &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 0)),
		)
		v.labels[id] = label
		row.AddChild(label)
		row.AddChild(v.button("-", &face, btnImg, btnTextColor, id, -volumeStep))
		row.AddChild(v.button("+", &face, btnImg, btnTextColor, id, volumeStep))
		panel.AddChild(row)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}, v
}

func (v *volumeUI) button(text string, face *ebtext.Face, img *imageui.NineSlice, textColor *widget.ButtonTextColor, id audio.ChannelID, delta float64) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: img}),
		widget.ButtonOpts.Text(text, face, textColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			settings, ok := v.game.audio.Settings(id)
			if !ok {
				return
			}
			_ = v.game.audio.Configure(id, audio.NewSettingsEvent().WithVolume(settings.Volume()+delta))
		}),
	)
}

func (v *volumeUI) label(id audio.ChannelID) string {
	settings, ok := v.game.audio.Settings(id)
	if !ok {
		return string(id)
	}
	return fmt.Sprintf("%-8s %3.0f%%", id, settings.Volume()*100)
}

// Refresh updates the labels after settings events were applied.
func (v *volumeUI) Refresh() {
	for id, text := range v.labels {
		text.Label = v.label(id)
	}
}
