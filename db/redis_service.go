package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"

	"defaulter-fixtures-go/models"
)

const (
	cohortsKey           = "cohorts"  // Set: Stores all cohort IDs
	cohortInfoPrefix     = "cohort:"  // Hash prefix: cohort:{id} -> stores cohort details
	cohortStudentsPrefix = "cohort:"  // Set prefix: cohort:{id}:students -> stores student IDs for a cohort
	studentInfoPrefix    = "student:" // Hash prefix: student:{id} -> stores student details
)

// RedisService caches the generated roster in Redis, grouped by cohort
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

func getCohortInfoKey(cohortID string) string {
	return cohortInfoPrefix + cohortID
}

func getCohortStudentsKey(cohortID string) string {
	return cohortStudentsPrefix + cohortID + ":students"
}

func getStudentInfoKey(studentID string) string {
	return studentInfoPrefix + studentID
}

func queueCohort(pipe redis.Pipeliner, ctx context.Context, c models.Cohort) {
	pipe.SAdd(ctx, cohortsKey, c.ID)
	pipe.HSet(ctx, getCohortInfoKey(c.ID), map[string]interface{}{
		"id":       c.ID,
		"name":     c.Name,
		"year":     string(c.Year),
		"stream":   string(c.Stream),
		"division": string(c.Division),
	})
}

func queueStudent(pipe redis.Pipeliner, ctx context.Context, s models.Student) {
	pipe.SAdd(ctx, getCohortStudentsKey(s.CohortID()), s.ID)
	pipe.HSet(ctx, getStudentInfoKey(s.ID), map[string]interface{}{
		"id":       s.ID,
		"name":     s.Name,
		"rollNo":   s.RollNo,
		"year":     string(s.Year),
		"stream":   string(s.Stream),
		"division": string(s.Division),
	})
}

// AddCohort adds a cohort to Redis
func (s *RedisService) AddCohort(cohort models.Cohort) error {
	if cohort.ID == "" || cohort.Name == "" {
		return errors.New("cohort ID and Name cannot be empty")
	}
	pipe := s.Client.Pipeline()
	queueCohort(pipe, s.Ctx, cohort)

	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("Error adding cohort %s: %v", cohort.ID, err)
		return fmt.Errorf("failed to add cohort to Redis: %w", err)
	}
	return nil
}

// cohortReads holds the queued reads for one cohort's hash and roster size
type cohortReads struct {
	info *redis.StringStringMapCmd
	size *redis.IntCmd
}

func queueCohortReads(pipe redis.Pipeliner, ctx context.Context, cohortID string) cohortReads {
	return cohortReads{
		info: pipe.HGetAll(ctx, getCohortInfoKey(cohortID)),
		size: pipe.SCard(ctx, getCohortStudentsKey(cohortID)),
	}
}

// cohort decodes the reads; an empty hash means the cohort is not cached
func (r cohortReads) cohort() *models.Cohort {
	data := r.info.Val()
	if len(data) == 0 {
		return nil
	}
	return &models.Cohort{
		ID:           data["id"],
		Name:         data["name"],
		Year:         models.Year(data["year"]),
		Stream:       models.Stream(data["stream"]),
		Division:     models.Division(data["division"]),
		StudentCount: r.size.Val(),
	}
}

// GetCohortByID retrieves a cohort and its roster size. A missing cohort is nil, nil.
func (s *RedisService) GetCohortByID(cohortID string) (*models.Cohort, error) {
	pipe := s.Client.Pipeline()
	reads := queueCohortReads(pipe, s.Ctx, cohortID)
	if _, err := pipe.Exec(s.Ctx); err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Error getting cohort %s: %v", cohortID, err)
		return nil, fmt.Errorf("failed to get cohort from Redis: %w", err)
	}
	return reads.cohort(), nil
}

// GetAllCohorts retrieves every cohort in one round trip, sorted by ID
func (s *RedisService) GetAllCohorts() ([]models.Cohort, error) {
	ids, err := s.Client.SMembers(s.Ctx, cohortsKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Error getting all cohort IDs: %v", err)
		return nil, fmt.Errorf("failed to get cohort IDs from Redis: %w", err)
	}
	cohorts := make([]models.Cohort, 0, len(ids))
	if len(ids) == 0 {
		return cohorts, nil
	}
	sort.Strings(ids)

	pipe := s.Client.Pipeline()
	reads := make([]cohortReads, len(ids))
	for i, id := range ids {
		reads[i] = queueCohortReads(pipe, s.Ctx, id)
	}
	if _, err := pipe.Exec(s.Ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get cohorts from Redis: %w", err)
	}

	for i, r := range reads {
		if c := r.cohort(); c != nil {
			cohorts = append(cohorts, *c)
		} else {
			log.Printf("Cohort %s is listed but has no details", ids[i])
		}
	}
	return cohorts, nil
}

// CohortExists checks if a cohort ID exists in the cohorts set
func (s *RedisService) CohortExists(cohortID string) (bool, error) {
	exists, err := s.Client.SIsMember(s.Ctx, cohortsKey, cohortID).Result()
	if err != nil {
		log.Printf("Error checking existence for cohort %s: %v", cohortID, err)
		return false, fmt.Errorf("failed to check cohort existence: %w", err)
	}
	return exists, nil
}

// CohortCount returns how many cohorts are cached
func (s *RedisService) CohortCount() (int64, error) {
	count, err := s.Client.SCard(s.Ctx, cohortsKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to count cohorts: %w", err)
	}
	return count, nil
}

// AddStudent adds a student and creates their cohort if needed
func (s *RedisService) AddStudent(student models.Student) error {
	if student.ID == "" || student.Name == "" {
		return errors.New("student ID and Name cannot be empty")
	}

	pipe := s.Client.Pipeline()
	queueCohort(pipe, s.Ctx, models.NewCohort(student.Year, student.Stream, student.Division))
	queueStudent(pipe, s.Ctx, student)

	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("Error adding student %s to cohort %s: %v", student.ID, student.CohortID(), err)
		return fmt.Errorf("failed to add student to Redis: %w", err)
	}
	return nil
}

// CacheRoster writes every student and their cohorts in a single pipeline
func (s *RedisService) CacheRoster(students []models.Student) (int, error) {
	pipe := s.Client.Pipeline()
	seen := make(map[string]bool)
	cached := 0

	for _, st := range students {
		if st.ID == "" || st.Name == "" {
			log.Printf("Skipping student with missing ID or Name (ID: '%s', Name: '%s')", st.ID, st.Name)
			continue
		}
		cohort := models.NewCohort(st.Year, st.Stream, st.Division)
		if !seen[cohort.ID] {
			queueCohort(pipe, s.Ctx, cohort)
			seen[cohort.ID] = true
		}
		queueStudent(pipe, s.Ctx, st)
		cached++
	}
	if cached == 0 {
		return 0, nil
	}

	if _, err := pipe.Exec(s.Ctx); err != nil {
		return 0, fmt.Errorf("failed to cache roster in Redis: %w", err)
	}
	log.Printf("Cached %d students in %d cohorts", cached, len(seen))
	return cached, nil
}

// GetStudentByID retrieves a student by ID. A missing student is nil, nil.
func (s *RedisService) GetStudentByID(studentID string) (*models.Student, error) {
	data, err := s.Client.HGetAll(s.Ctx, getStudentInfoKey(studentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Printf("Error getting student %s: %v", studentID, err)
		return nil, fmt.Errorf("failed to get student from Redis: %w", err)
	}
	student, err := decodeStudent(data)
	if err != nil {
		return nil, fmt.Errorf("student %s: %w", studentID, err)
	}
	return student, nil
}

// decodeStudent turns a student hash into a Student; an empty hash is nil, nil
func decodeStudent(data map[string]string) (*models.Student, error) {
	if len(data) == 0 {
		return nil, nil
	}

	roll, err := strconv.Atoi(data["rollNo"])
	if err != nil {
		return nil, fmt.Errorf("invalid roll number %q", data["rollNo"])
	}

	return &models.Student{
		ID:       data["id"],
		Name:     data["name"],
		RollNo:   roll,
		Year:     models.Year(data["year"]),
		Stream:   models.Stream(data["stream"]),
		Division: models.Division(data["division"]),
	}, nil
}

// GetStudentsByCohortID retrieves all students of a cohort in roll order
func (s *RedisService) GetStudentsByCohortID(cohortID string) ([]models.Student, error) {
	ids, err := s.Client.SMembers(s.Ctx, getCohortStudentsKey(cohortID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Student{}, nil
		}
		log.Printf("Error getting student IDs for cohort %s: %v", cohortID, err)
		return nil, fmt.Errorf("failed to get student IDs from Redis for cohort %s: %w", cohortID, err)
	}

	students := make([]models.Student, 0, len(ids))
	if len(ids) == 0 {
		return students, nil
	}

	pipe := s.Client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(s.Ctx, getStudentInfoKey(id))
	}
	if _, err := pipe.Exec(s.Ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get students from Redis for cohort %s: %w", cohortID, err)
	}

	for i, cmd := range cmds {
		student, err := decodeStudent(cmd.Val())
		if err != nil {
			log.Printf("Skipping student %s in cohort %s: %v", ids[i], cohortID, err)
			continue
		}
		if student != nil {
			students = append(students, *student)
		}
	}

	sort.Slice(students, func(i, j int) bool { return students[i].RollNo < students[j].RollNo })
	return students, nil
}

// GetRandomStudent selects a random student from a cohort. An empty cohort is nil, nil.
func (s *RedisService) GetRandomStudent(cohortID string) (*models.Student, error) {
	id, err := s.Client.SRandMember(s.Ctx, getCohortStudentsKey(cohortID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Printf("Error getting random student ID for cohort %s: %v", cohortID, err)
		return nil, fmt.Errorf("failed to get random student ID from Redis for cohort %s: %w", cohortID, err)
	}
	if id == "" {
		return nil, nil
	}

	return s.GetStudentByID(id)
}

// InitializeRedisClient creates a Redis client and checks the connection
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}

	log.Printf("Successfully connected to Redis %s DB %d", addr, db)
	return rdb, nil
}
