package redishandler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	"github.com/Leonard1379/MyDjangoProject/internal/errorz"
	"github.com/Leonard1379/MyDjangoProject/internal/models"
	"github.com/Leonard1379/MyDjangoProject/internal/repository"
)

const (
	questionSeqKey = "question:id_seq"
	choiceSeqKey   = "choice:id_seq"
	pubDateKey     = "questions:pub_date"
)

func questionKey(id int64) string { return fmt.Sprintf("question:%d", id) }
func choiceKey(id int64) string   { return fmt.Sprintf("choice:%d", id) }
func choiceListKey(questionID int64) string {
	return fmt.Sprintf("question:%d:choices", questionID)
}

// QuestionRepo keeps questions and choices in hashes. The pub date index is a sorted set
// scored by unix milliseconds; exact filtering happens after the range read.
type QuestionRepo struct {
	rdb *redis.Client
}

var _ repository.QuestionRepository = (*QuestionRepo)(nil)

func NewQuestionRepo(rdb *redis.Client) *QuestionRepo {
	return &QuestionRepo{rdb: rdb}
}

func (r *QuestionRepo) Create(ctx context.Context, q models.Question) (models.Question, error) {
	id, err := r.rdb.Incr(ctx, questionSeqKey).Result()
	if err != nil {
		return models.Question{}, fmt.Errorf("allocate question id: %w", err)
	}
	q.ID = id
	q.PubDate = q.PubDate.UTC()

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, questionKey(id), map[string]interface{}{
		"id":            id,
		"question_text": q.QuestionText,
		"pub_date":      q.PubDate.Format(time.RFC3339Nano),
	})
	pipe.ZAdd(ctx, pubDateKey, redis.Z{Score: float64(q.PubDate.UnixMilli()), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return models.Question{}, fmt.Errorf("save question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (models.Question, error) {
	data, err := r.rdb.HGetAll(ctx, questionKey(id)).Result()
	if err != nil {
		return models.Question{}, err
	}
	if len(data) == 0 {
		return models.Question{}, errorz.ErrNotFound
	}
	return decodeQuestion(data)
}

func (r *QuestionRepo) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]models.Question, error) {
	if offset < 0 {
		offset = 0
	}
	ids, err := r.rdb.ZRevRangeByScore(ctx, pubDateKey, &redis.ZRangeBy{
		Max:    strconv.FormatInt(now.UnixMilli(), 10),
		Min:    "-inf",
		Offset: int64(offset),
		Count:  int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("read pub date index: %w", err)
	}

	pipe := r.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, "question:"+id)
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("read questions: %w", err)
		}
	}

	questions := make([]models.Question, 0, len(ids))
	for _, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		q, err := decodeQuestion(data)
		if err != nil {
			return nil, err
		}
		if !q.IsPublished(now) {
			continue // same millisecond as now, but later
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuestionRepo) AddChoice(ctx context.Context, questionID int64, text string) (models.Choice, error) {
	exists, err := r.rdb.Exists(ctx, questionKey(questionID)).Result()
	if err != nil {
		return models.Choice{}, err
	}
	if exists == 0 {
		return models.Choice{}, errorz.ErrNotFound
	}

	id, err := r.rdb.Incr(ctx, choiceSeqKey).Result()
	if err != nil {
		return models.Choice{}, fmt.Errorf("allocate choice id: %w", err)
	}
	c := models.Choice{ID: id, QuestionID: questionID, ChoiceText: text}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, choiceKey(id), map[string]interface{}{
		"id":          id,
		"question_id": questionID,
		"choice_text": text,
		"votes":       0,
	})
	pipe.RPush(ctx, choiceListKey(questionID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return models.Choice{}, fmt.Errorf("save choice: %w", err)
	}
	return c, nil
}

func (r *QuestionRepo) Choices(ctx context.Context, questionID int64) ([]models.Choice, error) {
	ids, err := r.rdb.LRange(ctx, choiceListKey(questionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	pipe := r.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, "choice:"+id)
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("read choices: %w", err)
		}
	}

	choices := make([]models.Choice, 0, len(ids))
	for _, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		var c models.Choice
		if err := decode(data, &c); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, nil
}

func (r *QuestionRepo) Vote(ctx context.Context, questionID, choiceID int64) (models.Choice, error) {
	key := choiceKey(choiceID)
	owner, err := r.rdb.HGet(ctx, key, "question_id").Result()
	if errors.Is(err, redis.Nil) {
		return models.Choice{}, errorz.ErrNotFound
	}
	if err != nil {
		return models.Choice{}, err
	}
	if owner != strconv.FormatInt(questionID, 10) {
		return models.Choice{}, errorz.ErrNotFound
	}

	if err := r.rdb.HIncrBy(ctx, key, "votes", 1).Err(); err != nil {
		return models.Choice{}, fmt.Errorf("record vote: %w", err)
	}

	data, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return models.Choice{}, err
	}
	var c models.Choice
	if err := decode(data, &c); err != nil {
		return models.Choice{}, err
	}
	return c, nil
}

func (r *QuestionRepo) Close() error {
	return r.rdb.Close()
}

func decodeQuestion(data map[string]string) (models.Question, error) {
	var q models.Question
	if err := decode(data, &q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// decode maps a redis hash onto a model; numbers arrive as strings.
func decode(data map[string]string, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode redis hash: %w", err)
	}
	return nil
}
