package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/atm_bot/internal/model"
	"github.com/ivanoskov/atm_bot/internal/service"
)

// ChartGenerator генерирует графики для выписок
type ChartGenerator struct {
	Width  int
	Height int
}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{Width: 1200, Height: 600}
}

func (g *ChartGenerator) background() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    50,
			Left:   50,
			Right:  50,
			Bottom: 50,
		},
		FillColor: chart.ColorWhite,
	}
}

func rupeeFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("₹%.0f", f)
	}
	return ""
}

// balancePoints восстанавливает баланс до и после каждой операции.
// history упорядочена от новых к старым.
func balancePoints(history []model.Transaction) []float64 {
	n := len(history)
	points := make([]float64, n+1)
	for i := 0; i < n; i++ {
		tx := history[n-1-i]
		points[i+1] = float64(tx.BalanceAfter)
	}

	oldest := history[n-1]
	switch oldest.Kind {
	case model.KindDeposit:
		points[0] = float64(oldest.BalanceAfter - oldest.Amount)
	default:
		points[0] = float64(oldest.BalanceAfter + oldest.Amount)
	}
	return points
}

// GenerateBalanceChart строит график баланса по мини-выписке.
// Возвращает nil, если операций нет.
func (g *ChartGenerator) GenerateBalanceChart(history []model.Transaction) ([]byte, error) {
	if len(history) == 0 {
		return nil, nil
	}

	yValues := balancePoints(history)
	xValues := make([]float64, len(yValues))
	maxBalance := 0.0
	for i, v := range yValues {
		xValues[i] = float64(i)
		if v > maxBalance {
			maxBalance = v
		}
	}

	graph := chart.Chart{
		Width:      g.Width,
		Height:     g.Height,
		Background: g.background(),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(yValues) - 1)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("#%.0f", f)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: maxBalance*1.2 + 10},
			ValueFormatter: rupeeFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Balance",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 3,
					DotColor:    chart.ColorBlue,
					DotWidth:    5,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// GenerateStatementChart строит столбчатую диаграмму итогов выписки.
// Возвращает nil, если операций нет.
func (g *ChartGenerator) GenerateStatementChart(st *service.Statement) ([]byte, error) {
	if st == nil || st.Count == 0 {
		return nil, nil
	}

	bars := []chart.Value{
		{
			Label: fmt.Sprintf("Deposited: ₹%d", st.TotalDeposited),
			Value: float64(st.TotalDeposited),
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
				FillColor:   chart.ColorGreen,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
		{
			Label: fmt.Sprintf("Withdrawn: ₹%d", st.TotalWithdrawn),
			Value: float64(st.TotalWithdrawn),
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				FillColor:   chart.ColorRed,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
		{
			Label: fmt.Sprintf("Transferred: ₹%d", st.TotalTransferred),
			Value: float64(st.TotalTransferred),
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
	}

	top := 0.0
	for _, bar := range bars {
		if bar.Value > top {
			top = bar.Value
		}
	}

	graph := chart.BarChart{
		Title: "Statement",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      g.Width,
		Height:     g.Height,
		BarWidth:   120,
		Background: g.background(),
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.2},
			ValueFormatter: rupeeFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render statement chart: %w", err)
	}
	return buffer.Bytes(), nil
}
