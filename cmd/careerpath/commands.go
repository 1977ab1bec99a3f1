package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"career-path/internal/app"
	"career-path/internal/service"
)

var errEmptyInput = errors.New("empty input")

// errReported marca errores cuyo JSON ya se escribio en stdout.
var errReported = errors.New("reported")

type servicesFn func(ctx context.Context) *app.Services

func newRootCmd(build servicesFn, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "careerpath",
		Short:         "Career assessment scoring and role recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newScoreCmd(logger),
		newRecommendCmd(build),
		newPredictCmd(build),
		newPathwayCmd(build, logger),
		newTokenCmd(build),
	)
	return root
}

// readInput toma el primer argumento como JSON o, sin argumentos, lee stdin.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var raw []byte
	if len(args) > 0 {
		raw = []byte(args[0])
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = b
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, errEmptyInput
	}
	return raw, nil
}

func decodeInput(cmd *cobra.Command, args []string, v any) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail escribe {"success":false,"error":...} y propaga un error para el exit code.
func fail(cmd *cobra.Command, err error) error {
	_ = writeJSON(cmd, map[string]any{"success": false, "error": err.Error()})
	return errReported
}

func newScoreCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "score [json]",
		Short: "Score a questionnaire read from the argument or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.ScoringRequest
			if err := decodeInput(cmd, args, &req); err != nil {
				_ = writeJSON(cmd, service.ErrorResult(err))
				return errReported
			}
			res, err := service.NewScoringService(logger).Score(req)
			if werr := writeJSON(cmd, res); werr != nil {
				return werr
			}
			if err != nil {
				return errReported
			}
			return nil
		},
	}
}

func newRecommendCmd(build servicesFn) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [json]",
		Short: "Rank the roles of a career cluster",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.RecommendationRequest
			if err := decodeInput(cmd, args, &req); err != nil {
				return fail(cmd, err)
			}
			resp := build(cmd.Context()).Recommendations.Recommend(cmd.Context(), req)
			if err := writeJSON(cmd, resp); err != nil {
				return err
			}
			if !resp.Success {
				return errReported
			}
			return nil
		},
	}
}

func newPredictCmd(build servicesFn) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [json]",
		Short: "Predict the career cluster of a user description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.ClusterRequest
			if err := decodeInput(cmd, args, &req); err != nil {
				return fail(cmd, err)
			}
			resp := build(cmd.Context()).Clusters.Predict(cmd.Context(), req)
			if err := writeJSON(cmd, resp); err != nil {
				return err
			}
			if !resp.Success {
				return errReported
			}
			return nil
		},
	}
}

func newPathwayCmd(build servicesFn, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "pathway [json]",
		Short: "Score, classify and rank roles in one pass",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req service.PathwayRequest
			if err := decodeInput(cmd, args, &req); err != nil {
				_ = writeJSON(cmd, service.PathwayResponse{Scores: service.ErrorResult(err)})
				return errReported
			}
			resp, err := build(cmd.Context()).Pathway.Evaluate(cmd.Context(), req)
			if werr := writeJSON(cmd, resp); werr != nil {
				return werr
			}
			if err != nil {
				logger.Debug("pathway failed", zap.Error(err))
				return errReported
			}
			return nil
		},
	}
}

func newTokenCmd(build servicesFn) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token for a client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jwtSvc := build(cmd.Context()).JWT
			if !jwtSvc.Enabled() {
				return fail(cmd, errors.New("JWT_SECRET not configured"))
			}
			tok, err := jwtSvc.IssueAccessToken(clientID)
			if err != nil {
				return fail(cmd, err)
			}
			return writeJSON(cmd, tok)
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client id embedded in the token")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}
