package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RunMigrations applies the schema statements in order. Every statement is
// idempotent so it is safe to run on each start.
func RunMigrations(ctx context.Context, db DBTX, log *zap.Logger) error {
	migrations := []string{
		createContactInformationTable,
		createUsersTable,
		createReferenceTables,
		createEducationTables,
		createExperienceTables,
		createUserInstitutionsTable,
		createPostsTable,
		createCommentsTable,
		createLikesTable,
		createJobsTable,
	}

	for i, migration := range migrations {
		log.Debug("running migration", zap.Int("step", i+1), zap.Int("total", len(migrations)))
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("migrations completed", zap.Int("count", len(migrations)))
	return nil
}

const createContactInformationTable = `
CREATE TABLE IF NOT EXISTS contact_information (
  contact_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  email TEXT NOT NULL,
  website TEXT,
  CONSTRAINT contact_information_email_key UNIQUE (email)
);
`

// users.contact_id is checked at commit so that account deletion can remove
// the contact row before the user row inside one transaction.
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  first_name TEXT NOT NULL,
  middle_name TEXT,
  last_name TEXT NOT NULL,
  about TEXT,
  password_hash TEXT NOT NULL,
  contact_id UUID NOT NULL UNIQUE
    REFERENCES contact_information(contact_id) DEFERRABLE INITIALLY DEFERRED,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const createReferenceTables = `
CREATE TABLE IF NOT EXISTS institutions (
  institution_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  name TEXT NOT NULL,
  branch TEXT NOT NULL,
  CONSTRAINT institutions_name_branch_key UNIQUE (name, branch)
);

CREATE TABLE IF NOT EXISTS companies (
  company_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  name TEXT NOT NULL,
  branch TEXT NOT NULL,
  CONSTRAINT companies_name_branch_key UNIQUE (name, branch)
);

CREATE TABLE IF NOT EXISTS skills (
  skill_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  skill_name TEXT NOT NULL,
  CONSTRAINT skills_skill_name_key UNIQUE (skill_name)
);
`

const createEducationTables = `
CREATE TABLE IF NOT EXISTS education_details (
  education_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id UUID NOT NULL REFERENCES users(user_id),
  institution_id UUID NOT NULL REFERENCES institutions(institution_id),
  degree TEXT NOT NULL,
  school TEXT,
  start_date DATE,
  end_date DATE,
  grade TEXT,
  description TEXT
);

CREATE INDEX IF NOT EXISTS idx_education_details_user_id ON education_details(user_id);

CREATE TABLE IF NOT EXISTS education_skills (
  education_id UUID NOT NULL REFERENCES education_details(education_id),
  skill_id UUID NOT NULL REFERENCES skills(skill_id),
  PRIMARY KEY (education_id, skill_id)
);
`

const createExperienceTables = `
CREATE TABLE IF NOT EXISTS experience_details (
  experience_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id UUID NOT NULL REFERENCES users(user_id),
  company_id UUID NOT NULL REFERENCES companies(company_id),
  job_role TEXT NOT NULL,
  job_type TEXT,
  start_date DATE NOT NULL,
  end_date DATE,
  description TEXT
);

CREATE INDEX IF NOT EXISTS idx_experience_details_user_id ON experience_details(user_id);

CREATE TABLE IF NOT EXISTS experience_skills (
  experience_id UUID NOT NULL REFERENCES experience_details(experience_id),
  skill_id UUID NOT NULL REFERENCES skills(skill_id),
  PRIMARY KEY (experience_id, skill_id)
);
`

const createUserInstitutionsTable = `
CREATE TABLE IF NOT EXISTS user_institutions (
  user_id UUID NOT NULL REFERENCES users(user_id),
  institution_id UUID NOT NULL REFERENCES institutions(institution_id),
  PRIMARY KEY (user_id, institution_id)
);
`

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
  post_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id UUID NOT NULL REFERENCES users(user_id),
  description TEXT NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
`

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
  comment_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  post_id UUID NOT NULL REFERENCES posts(post_id),
  user_id UUID NOT NULL REFERENCES users(user_id),
  description TEXT NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);
`

const createLikesTable = `
CREATE TABLE IF NOT EXISTS likes (
  like_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  post_id UUID NOT NULL REFERENCES posts(post_id),
  user_id UUID NOT NULL REFERENCES users(user_id),
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  CONSTRAINT likes_post_id_user_id_key UNIQUE (post_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);
`

const createJobsTable = `
CREATE TABLE IF NOT EXISTS jobs (
  job_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT,
  description TEXT,
  link TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`
