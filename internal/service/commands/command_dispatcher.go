package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const dateFormat = "2006-01-02"

// HelpText lists the commands understood over chat.
const HelpText = `Supported commands:
/broilers <count> <age-weeks> <breed>
/soldbroilers <count> <age-weeks> <breed>
/layers <count> <age-weeks> <breed>
/soldlayers <sold> <age-weeks> <breed>
/eggs <count> <breed>
/soldeggs <count> <breed>
/damagedeggs <count> <breed>
/profile <type> <age-weeks> <vaccination-weeks> <feed>
/report`

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	GenerateWeeklyReport(ctx context.Context, now time.Time) (string, error)
}

// Dispatcher executes parsed commands against the record services.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	records   *husbandry.Services
	reporting ReportingAdapter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(records *husbandry.Services, reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:   records,
		reporting: reporting,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCommand converts the command to a service call and describes the stored record.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandBroilers, models.CommandSoldBroilers:
		count, age, breed, err := flockArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		var rec models.Broiler
		if cmd.Type == models.CommandSoldBroilers {
			rec, err = s.records.Broilers.Sell(ctx, age, count, breed)
		} else {
			rec, err = s.records.Broilers.Create(ctx, age, count, breed)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Broilers %s recorded on %s: %d %s, %d weeks (available %d, sold %d).\nID: %s",
			rec.Event, rec.CreatedAt.Format(dateFormat), rec.NumberOfBroilers, rec.Breed, rec.AgeWeeks, rec.Available, rec.Sold, rec.ID), nil
	case models.CommandLayers:
		count, age, breed, err := flockArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		rec, err := s.records.Layers.Create(ctx, age, count, breed)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Layers recorded on %s: %d %s, %d weeks.\nID: %s",
			rec.CreatedAt.Format(dateFormat), rec.NumberOfLayers, rec.Breed, rec.AgeWeeks, rec.ID), nil
	case models.CommandSoldLayers:
		sold, age, breed, err := flockArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		// chat sales carry no flock size; the service falls back to the sold count
		rec, err := s.records.Layers.Sell(ctx, age, 0, sold, breed)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Layer sale recorded on %s: %d %s sold.\nID: %s",
			rec.CreatedAt.Format(dateFormat), rec.Sold, rec.Breed, rec.ID), nil
	case models.CommandEggs, models.CommandSoldEggs, models.CommandDamagedEggs:
		count, breed, err := eggArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		var rec models.Egg
		switch cmd.Type {
		case models.CommandSoldEggs:
			rec, err = s.records.Eggs.RecordSold(ctx, breed, count)
		case models.CommandDamagedEggs:
			rec, err = s.records.Eggs.RecordDamaged(ctx, breed, count)
		default:
			rec, err = s.records.Eggs.RecordLaid(ctx, breed, count)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Eggs %s recorded on %s: %d %s.\nID: %s",
			rec.Event, rec.CreatedAt.Format(dateFormat), count, rec.Breed, rec.ID), nil
	case models.CommandProfile:
		in, err := profileArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		rec, err := s.records.Poultry.Create(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Poultry profile saved: %s, %d weeks, feed %s.\nTag: %s",
			rec.TypeOfPoultry, rec.AgeWeeks, rec.FeedType, rec.NFCTagID), nil
	case models.CommandReport:
		if s.reporting == nil {
			return "", ErrUnsupportedCommand
		}
		return s.reporting.GenerateWeeklyReport(ctx, s.now().UTC())
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// flockArgs parses "<count> <age-weeks> <breed...>".
func flockArgs(args []string) (count, age uint64, breed string, err error) {
	if len(args) < 3 {
		return 0, 0, "", ErrInvalidArguments
	}
	if count, err = strconv.ParseUint(args[0], 10, 64); err != nil {
		return 0, 0, "", ErrInvalidArguments
	}
	if age, err = strconv.ParseUint(args[1], 10, 64); err != nil {
		return 0, 0, "", ErrInvalidArguments
	}
	return count, age, strings.Join(args[2:], " "), nil
}

// eggArgs parses "<count> <breed...>".
func eggArgs(args []string) (uint64, string, error) {
	if len(args) < 2 {
		return 0, "", ErrInvalidArguments
	}
	count, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, "", ErrInvalidArguments
	}
	return count, strings.Join(args[1:], " "), nil
}

// profileArgs parses "<type> <age-weeks> <vaccination-weeks> <feed...>".
func profileArgs(args []string) (husbandry.PoultryInput, error) {
	if len(args) < 4 {
		return husbandry.PoultryInput{}, ErrInvalidArguments
	}
	age, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return husbandry.PoultryInput{}, ErrInvalidArguments
	}
	vaccination, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return husbandry.PoultryInput{}, ErrInvalidArguments
	}
	return husbandry.PoultryInput{
		TypeOfPoultry:    args[0],
		AgeWeeks:         age,
		VaccinationWeeks: vaccination,
		FeedType:         strings.Join(args[3:], " "),
	}, nil
}
