package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scigate/scigate/internal/reputation"
)

var repTimeout time.Duration

// reputationCmd represents the reputation command
var reputationCmd = &cobra.Command{
	Use:   "reputation <identity>",
	Short: "Show a participant's reputation score",
	Long: `Reputation reads the participant's score from the reputation service.
When the service cannot be reached, the score is reported as unknown; the
tool never substitutes a made-up value.

Example:
  scigate reputation 0xa1b2c3`,
	Args: cobra.ExactArgs(1),
	RunE: runReputation,
}

func init() {
	rootCmd.AddCommand(reputationCmd)

	reputationCmd.Flags().DurationVar(&repTimeout, "timeout", 30*time.Second, "reputation read timeout")
}

func runReputation(cmd *cobra.Command, args []string) error {
	identity := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), repTimeout)
	defer cancel()

	cfg := buildToolConfig()

	client, err := reputation.NewClient(cfg.Reputation.BaseURL, cfg.Reputation.Timeout, cfg.Reputation.CacheTTL)
	if err != nil {
		return err
	}

	score, err := client.Score(ctx, identity)
	if err != nil {
		var unavailable *reputation.UnavailableError
		if errors.As(err, &unavailable) {
			return fmt.Errorf("reputation unknown for %s (service unavailable): %w", identity, unavailable.Err)
		}
		return err
	}

	fmt.Printf("Reputation for %s: %d\n", identity, score)
	return nil
}
