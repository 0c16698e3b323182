package repositories

import (
	"context"
	"sync"
	"time"

	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Snapshot je trenutno keširano stanje sve tri kolekcije. Kolekcije se osvežavaju
// nezavisno jedna od druge, pa npr. clients može da kasni za tasks - pozivaoci
// računaju pogled iz onoga što trenutno imaju.
type Snapshot struct {
	Tasks     []models.Task
	Clients   []models.Client
	Employees []models.Employee
}

// SnapshotFeed prati change stream-ove nad kolekcijama tasks, clients i employees
// i na svaku promenu ponovo učitava celu kolekciju u memoriju.
type SnapshotFeed struct {
	tasksCollection     *mongo.Collection
	clientsCollection   *mongo.Collection
	employeesCollection *mongo.Collection

	mu        sync.RWMutex
	tasks     []models.Task
	clients   []models.Client
	employees []models.Employee

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewSnapshotFeed(db *mongo.Database) *SnapshotFeed {
	return &SnapshotFeed{
		tasksCollection:     db.Collection("tasks"),
		clientsCollection:   db.Collection("clients"),
		employeesCollection: db.Collection("employees"),
	}
}

// Start učitava početne snapshot-ove i pokreće watcher-e. Vraća grešku samo ako
// inicijalno učitavanje ne uspe.
func (f *SnapshotFeed) Start(ctx context.Context) error {
	if err := f.reloadTasks(ctx); err != nil {
		return err
	}
	if err := f.reloadClients(ctx); err != nil {
		return err
	}
	if err := f.reloadEmployees(ctx); err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel

	f.wg.Add(3)
	go f.watch(watchCtx, "tasks", f.tasksCollection, f.reloadTasks)
	go f.watch(watchCtx, "clients", f.clientsCollection, f.reloadClients)
	go f.watch(watchCtx, "employees", f.employeesCollection, f.reloadEmployees)

	return nil
}

// watch sluša change stream i na svaki događaj ponovo učitava kolekciju.
// Ako stream pukne, otvara se novi posle kratke pauze.
func (f *SnapshotFeed) watch(ctx context.Context, name string, collection *mongo.Collection, reload func(context.Context) error) {
	defer f.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := collection.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			logging.Logger.Errorf("Event ID: FEED_WATCH_FAILED, Description: Failed to open change stream for %s: %v", name, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for stream.Next(ctx) {
			if err := reload(ctx); err != nil {
				logging.Logger.Errorf("Event ID: FEED_RELOAD_FAILED, Description: Failed to reload %s snapshot: %v", name, err)
			}
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logging.Logger.Warnf("Event ID: FEED_STREAM_CLOSED, Description: Change stream for %s closed: %v", name, err)
		}
		stream.Close(context.Background())
	}
}

func (f *SnapshotFeed) reloadTasks(ctx context.Context) error {
	cursor, err := f.tasksCollection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return err
	}

	f.mu.Lock()
	f.tasks = tasks
	f.mu.Unlock()
	return nil
}

func (f *SnapshotFeed) reloadClients(ctx context.Context) error {
	cursor, err := f.clientsCollection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return err
	}

	f.mu.Lock()
	f.clients = clients
	f.mu.Unlock()
	return nil
}

func (f *SnapshotFeed) reloadEmployees(ctx context.Context) error {
	cursor, err := f.employeesCollection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return err
	}

	f.mu.Lock()
	f.employees = employees
	f.mu.Unlock()
	return nil
}

// Snapshot vraća kopiju referenci na trenutno keširane kolekcije.
func (f *SnapshotFeed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Snapshot{
		Tasks:     f.tasks,
		Clients:   f.clients,
		Employees: f.employees,
	}
}

// Employees vraća samo snapshot kolekcije employees.
func (f *SnapshotFeed) Employees() []models.Employee {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.employees
}

// Close zaustavlja watcher-e. Bezbedno je pozvati ga više puta; upisi koji su
// već poslati ka bazi se ne prekidaju.
func (f *SnapshotFeed) Close() {
	f.closeOnce.Do(func() {
		if f.cancel != nil {
			f.cancel()
		}
		f.wg.Wait()
		logging.Logger.Info("Event ID: FEED_CLOSED, Description: Snapshot feed unsubscribed from all collections.")
	})
}
