package mysqldb

import (
	"database/sql"
	"fmt"

	"github.com/akoreshkov/bloghub-be/config"
	appDb "github.com/akoreshkov/bloghub-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*PostDB
	*GroupDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.DBMaxConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		PostDB:  getPostDB(sess),
		GroupDB: getGroupDB(sess),
		UserDB:  getUserDB(sess),
		sess:    sess,
		sqlDB:   sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
