package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/ui/statcard"
)

type cardFlags struct {
	title    string
	value    string
	number   bool
	subtitle string
	trend    float64
	down     bool
	icon     string
}

func newCardCmd() *cobra.Command {
	var f cardFlags

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a single stat card as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := f.props(cmd)
			if err != nil {
				return err
			}
			if err := statcard.Render(props).WriteHTML(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("rendering card: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&f.title, "title", "", "Card title")
	cmd.Flags().StringVar(&f.value, "value", "", "Headline value")
	cmd.Flags().BoolVar(&f.number, "number", false, "Treat --value as a number")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "Secondary caption")
	cmd.Flags().Float64Var(&f.trend, "trend", 0, "Trend magnitude in percent")
	cmd.Flags().BoolVar(&f.down, "down", false, "Mark the trend as negative")
	cmd.Flags().StringVar(&f.icon, "icon", "activity", "Icon name")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func (f cardFlags) props(cmd *cobra.Command) (statcard.Props, error) {
	p := statcard.Props{Title: f.title, Value: domain.StringValue(f.value)}

	if f.number {
		n, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return statcard.Props{}, fmt.Errorf("--value %q is not a number", f.value)
		}
		p.Value = domain.NumberValue(n)
	}

	icon, ok := statcard.LookupIcon(f.icon)
	if !ok {
		return statcard.Props{}, fmt.Errorf("unknown icon %q", f.icon)
	}
	p.Icon = icon

	if cmd.Flags().Changed("subtitle") {
		s := f.subtitle
		p.Subtitle = &s
	}
	if cmd.Flags().Changed("trend") {
		p.Trend = &domain.Trend{Value: f.trend, IsPositive: !f.down}
	} else if f.down {
		return statcard.Props{}, fmt.Errorf("--down requires --trend")
	}
	return p, nil
}
