package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pavelanni/interviewer/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'candidate',
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS auth_sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS interviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		job_role TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		total_questions INTEGER NOT NULL,
		current_question_index INTEGER NOT NULL DEFAULT 0,
		score REAL,
		feedback TEXT,
		started_at DATETIME,
		completed_at DATETIME,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		interview_id INTEGER NOT NULL,
		question_text TEXT NOT NULL,
		question_type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		position INTEGER NOT NULL,
		expected_answer TEXT NOT NULL DEFAULT '',
		time_limit INTEGER NOT NULL DEFAULT 0,
		UNIQUE (interview_id, position),
		FOREIGN KEY (interview_id) REFERENCES interviews(id)
	);

	CREATE TABLE IF NOT EXISTS responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		interview_id INTEGER NOT NULL,
		question_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		answer TEXT NOT NULL,
		time_spent INTEGER NOT NULL DEFAULT 0,
		score REAL,
		feedback TEXT,
		submitted_at DATETIME NOT NULL,
		UNIQUE (interview_id, question_id),
		FOREIGN KEY (interview_id) REFERENCES interviews(id),
		FOREIGN KEY (question_id) REFERENCES questions(id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateInterview inserts a new pending interview with the cursor at 0.
func (s *Store) CreateInterview(iv model.Interview) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO interviews (user_id, title, job_role, company, difficulty, status, total_questions, current_question_index, created_at)
		 VALUES (?, ?, ?, ?, ?, 'pending', ?, 0, ?)`,
		iv.UserID, iv.Title, iv.JobRole, iv.Company, iv.Difficulty, iv.TotalQuestions, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetInterview returns an interview by ID.
func (s *Store) GetInterview(id int64) (model.Interview, error) {
	var iv model.Interview
	err := s.db.QueryRow(
		`SELECT id, user_id, title, job_role, company, difficulty, status, total_questions,
		        current_question_index, score, feedback, started_at, completed_at, created_at
		 FROM interviews WHERE id = ?`, id,
	).Scan(&iv.ID, &iv.UserID, &iv.Title, &iv.JobRole, &iv.Company, &iv.Difficulty, &iv.Status,
		&iv.TotalQuestions, &iv.CurrentQuestionIndex, &iv.Score, &iv.Feedback,
		&iv.StartedAt, &iv.CompletedAt, &iv.CreatedAt)
	return iv, err
}

// ListInterviewsForUser returns a user's interviews, newest first.
func (s *Store) ListInterviewsForUser(userID int64) ([]model.Interview, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, title, job_role, company, difficulty, status, total_questions,
		        current_question_index, score, feedback, started_at, completed_at, created_at
		 FROM interviews WHERE user_id = ? ORDER BY id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var interviews []model.Interview
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.Title, &iv.JobRole, &iv.Company, &iv.Difficulty,
			&iv.Status, &iv.TotalQuestions, &iv.CurrentQuestionIndex, &iv.Score, &iv.Feedback,
			&iv.StartedAt, &iv.CompletedAt, &iv.CreatedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

// StartInterview marks a pending interview in_progress and stamps started_at.
func (s *Store) StartInterview(id int64) error {
	_, err := s.db.Exec(
		`UPDATE interviews SET status = 'in_progress', started_at = ? WHERE id = ?`,
		time.Now(), id,
	)
	return err
}

// AdvanceInterview moves the question cursor forward and, when the cursor
// reaches total_questions, marks the interview completed.
func (s *Store) AdvanceInterview(id int64, nextIndex int, completed bool) error {
	if completed {
		_, err := s.db.Exec(
			`UPDATE interviews SET current_question_index = ?, status = 'completed', completed_at = ? WHERE id = ?`,
			nextIndex, time.Now(), id,
		)
		return err
	}
	_, err := s.db.Exec(
		`UPDATE interviews SET current_question_index = ?, status = 'in_progress' WHERE id = ?`,
		nextIndex, id,
	)
	return err
}

// UpdateInterviewResult writes the overall score and feedback. Re-running
// the synthesis job overwrites unconditionally.
func (s *Store) UpdateInterviewResult(id int64, score float64, feedback string) error {
	_, err := s.db.Exec(
		`UPDATE interviews SET score = ?, feedback = ? WHERE id = ?`,
		score, feedback, id,
	)
	return err
}

// InsertQuestion stores a question.
func (s *Store) InsertQuestion(q model.Question) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO questions (interview_id, question_text, question_type, difficulty, position, expected_answer, time_limit)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.InterviewID, q.QuestionText, q.QuestionType, q.Difficulty, q.Position, q.ExpectedAnswer, q.TimeLimit,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuestion returns a question by ID.
func (s *Store) GetQuestion(id int64) (model.Question, error) {
	var q model.Question
	err := s.db.QueryRow(
		`SELECT id, interview_id, question_text, question_type, difficulty, position, expected_answer, time_limit
		 FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.InterviewID, &q.QuestionText, &q.QuestionType, &q.Difficulty, &q.Position, &q.ExpectedAnswer, &q.TimeLimit)
	return q, err
}

// ListQuestionsForInterview returns an interview's questions in
// presentation order.
func (s *Store) ListQuestionsForInterview(interviewID int64) ([]model.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, interview_id, question_text, question_type, difficulty, position, expected_answer, time_limit
		 FROM questions WHERE interview_id = ? ORDER BY position`, interviewID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.InterviewID, &q.QuestionText, &q.QuestionType, &q.Difficulty,
			&q.Position, &q.ExpectedAnswer, &q.TimeLimit); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// QuestionCountForInterview returns the number of generated questions.
func (s *Store) QuestionCountForInterview(interviewID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions WHERE interview_id = ?`, interviewID).Scan(&count)
	return count, err
}

// InsertResponse stores an answer. The UNIQUE(interview_id, question_id)
// constraint rejects a second response for the same question.
func (s *Store) InsertResponse(r model.Response) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO responses (interview_id, question_id, user_id, answer, time_spent, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.InterviewID, r.QuestionID, r.UserID, r.Answer, r.TimeSpent, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetResponse returns a response by ID.
func (s *Store) GetResponse(id int64) (model.Response, error) {
	var r model.Response
	err := s.db.QueryRow(
		`SELECT id, interview_id, question_id, user_id, answer, time_spent, score, feedback, submitted_at
		 FROM responses WHERE id = ?`, id,
	).Scan(&r.ID, &r.InterviewID, &r.QuestionID, &r.UserID, &r.Answer, &r.TimeSpent, &r.Score, &r.Feedback, &r.SubmittedAt)
	return r, err
}

// GetResponseForQuestion returns the response for an (interview, question)
// pair, or nil when the question has not been answered.
func (s *Store) GetResponseForQuestion(interviewID, questionID int64) (*model.Response, error) {
	var r model.Response
	err := s.db.QueryRow(
		`SELECT id, interview_id, question_id, user_id, answer, time_spent, score, feedback, submitted_at
		 FROM responses WHERE interview_id = ? AND question_id = ?`, interviewID, questionID,
	).Scan(&r.ID, &r.InterviewID, &r.QuestionID, &r.UserID, &r.Answer, &r.TimeSpent, &r.Score, &r.Feedback, &r.SubmittedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResponsesForInterview returns all responses for an interview.
func (s *Store) ListResponsesForInterview(interviewID int64) ([]model.Response, error) {
	rows, err := s.db.Query(
		`SELECT id, interview_id, question_id, user_id, answer, time_spent, score, feedback, submitted_at
		 FROM responses WHERE interview_id = ? ORDER BY id`, interviewID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var responses []model.Response
	for rows.Next() {
		var r model.Response
		if err := rows.Scan(&r.ID, &r.InterviewID, &r.QuestionID, &r.UserID, &r.Answer, &r.TimeSpent,
			&r.Score, &r.Feedback, &r.SubmittedAt); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// UpdateResponseResult writes the evaluation score and feedback for a
// response. Re-running the evaluation job overwrites.
func (s *Store) UpdateResponseResult(id int64, score float64, feedback string) error {
	_, err := s.db.Exec(
		`UPDATE responses SET score = ?, feedback = ? WHERE id = ?`,
		score, feedback, id,
	)
	return err
}
